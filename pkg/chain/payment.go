package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/afara-labs/fundingchain/pkg/audit"
	"github.com/afara-labs/fundingchain/pkg/mandate"
	"github.com/afara-labs/fundingchain/pkg/state"
)

// simulatedToken stands in for a real payment method token. No actual
// credential is ever exchanged.
const simulatedToken = "simulated_funding_token_AFRICA_TECH"

// OutcomeStatus distinguishes a settled payment from a clean abort.
type OutcomeStatus string

const (
	OutcomeCompleted OutcomeStatus = "completed"
	OutcomeDeclined  OutcomeStatus = "declined"
)

// PaymentOutcome is the result of the payment stage. A declined consent
// is a clean negative outcome, not an error: Status is OutcomeDeclined
// and both records are nil.
type PaymentOutcome struct {
	Status  OutcomeStatus
	Mandate *mandate.PaymentMandate
	Result  *mandate.PaymentResult
}

// CreatePayment reads the session's CartMandate, validates it, and — if
// the user consented — writes the PaymentMandate and simulated
// PaymentResult. Settlement here is a simulation: status is recorded as
// completed but no real funds move.
//
// When consentGranted is false the transaction is aborted without
// fault: nothing is written and the returned outcome is declined.
func (c *Chain) CreatePayment(ctx context.Context, sessionID string, consentGranted bool) (*PaymentOutcome, error) {
	lock := c.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	raw, err := c.store.Get(ctx, sessionID, mandate.KeyCartMandate)
	if errors.Is(err, state.ErrNotFound) {
		merr := &mandate.MissingPredecessorError{Stage: mandate.StageCart, Key: mandate.KeyCartMandate}
		c.reject(ctx, sessionID, mandate.StagePayment, merr)
		return nil, merr
	}
	if err != nil {
		return nil, err
	}

	cart, err := mandate.ParseCart(raw)
	if err != nil {
		c.reject(ctx, sessionID, mandate.StagePayment, err)
		return nil, err
	}

	now := time.Now().UTC()
	if err := mandate.ValidateExpiry(mandate.StageCart, cart.Contents.CartExpiry, now); err != nil {
		c.reject(ctx, sessionID, mandate.StagePayment, err)
		return nil, err
	}
	c.log.Info("cart mandate valid",
		"session_id", sessionID,
		"cart_id", cart.Contents.ID,
		"remaining", mandate.Remaining(cart.Contents.CartExpiry, now),
	)

	if !consentGranted {
		c.log.Info("payment declined by user", "session_id", sessionID, "cart_id", cart.Contents.ID)
		_ = c.audit.Record(ctx, sessionID, audit.EventSettlement, audit.ActionPaymentDeclined, string(mandate.StagePayment), map[string]any{
			"cart_id": cart.Contents.ID,
		})
		return &PaymentOutcome{Status: OutcomeDeclined}, nil
	}

	total := cart.Contents.PaymentRequest.Details.Total
	pm := &mandate.PaymentMandate{
		Contents: mandate.PaymentMandateContents{
			PaymentMandateID:    paymentMandateID(cart.Contents.ID, now),
			PaymentDetailsID:    cart.Contents.ID,
			PaymentDetailsTotal: total,
			PaymentResponse: mandate.PaymentResponse{
				RequestID:  cart.Contents.ID,
				MethodName: "CARD",
				Details:    map[string]string{"token": simulatedToken},
			},
			MerchantAgent:    cart.Contents.MerchantName,
			UserConsent:      true,
			ConsentTimestamp: mandate.FormatTimestamp(now),
			Timestamp:        mandate.FormatTimestamp(now),
		},
		AgentPresent: true,
	}

	result := &mandate.PaymentResult{
		TransactionID: transactionID(cart.Contents.ID, now),
		Status:        mandate.ResultCompleted,
		Amount:        total.Amount.Value,
		Currency:      total.Amount.Currency,
		Recipient:     cart.Contents.MerchantName,
		Timestamp:     mandate.FormatTimestamp(now),
		Simulation:    true,
	}

	rawPM, err := json.Marshal(pm)
	if err != nil {
		return nil, fmt.Errorf("chain: encode payment mandate: %w", err)
	}
	rawResult, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("chain: encode payment result: %w", err)
	}
	if err := c.store.Put(ctx, sessionID, mandate.KeyPaymentMandate, rawPM); err != nil {
		return nil, err
	}
	if err := c.store.Put(ctx, sessionID, mandate.KeyPaymentResult, rawResult); err != nil {
		return nil, err
	}

	c.log.Info("funding transfer processed",
		"session_id", sessionID,
		"transaction_id", result.TransactionID,
		"recipient", result.Recipient,
		"amount", result.Amount,
		"currency", result.Currency,
		"simulation", true,
	)
	_ = c.audit.Record(ctx, sessionID, audit.EventSettlement, audit.ActionPaymentCompleted, string(mandate.StagePayment), map[string]any{
		"transaction_id":     result.TransactionID,
		"payment_mandate_id": pm.Contents.PaymentMandateID,
		"amount":             result.Amount,
		"recipient":          result.Recipient,
	})

	return &PaymentOutcome{Status: OutcomeCompleted, Mandate: pm, Result: result}, nil
}
