package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/afara-labs/fundingchain/pkg/audit"
	"github.com/afara-labs/fundingchain/pkg/canonical"
	"github.com/afara-labs/fundingchain/pkg/mandate"
	"github.com/afara-labs/fundingchain/pkg/state"
)

// Supported card networks and types for the single CARD method the
// chain offers.
var (
	supportedNetworks = []string{"visa", "mastercard"}
	supportedTypes    = []string{"debit", "credit"}
)

// CreateCart reads the session's IntentMandate, validates it, and writes
// a signed CartMandate: the organization's time-boxed binding offer to
// accept the funding. The intent record stays in place.
func (c *Chain) CreateCart(ctx context.Context, sessionID string) (*mandate.CartMandate, error) {
	lock := c.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	raw, err := c.store.Get(ctx, sessionID, mandate.KeyIntentMandate)
	if errors.Is(err, state.ErrNotFound) {
		merr := &mandate.MissingPredecessorError{Stage: mandate.StageIntent, Key: mandate.KeyIntentMandate}
		c.reject(ctx, sessionID, mandate.StageCart, merr)
		return nil, merr
	}
	if err != nil {
		return nil, err
	}

	intent, err := mandate.ParseIntent(raw)
	if err != nil {
		c.reject(ctx, sessionID, mandate.StageCart, err)
		return nil, err
	}

	now := time.Now().UTC()
	if err := mandate.ValidateExpiry(mandate.StageIntent, intent.IntentExpiry, now); err != nil {
		c.reject(ctx, sessionID, mandate.StageCart, err)
		return nil, err
	}
	c.log.Info("intent mandate valid",
		"session_id", sessionID,
		"intent_id", intent.IntentID,
		"remaining", mandate.Remaining(intent.IntentExpiry, now),
	)

	// An intent that names no organization is a caller error, not a
	// gap to paper over with a placeholder merchant.
	if len(intent.Merchants) == 0 {
		verr := &mandate.ValidationError{Field: "merchants", Reason: "intent names no funded organization"}
		c.reject(ctx, sessionID, mandate.StageCart, verr)
		return nil, verr
	}
	orgName := intent.Merchants[0]

	id := cartID(orgName, now)
	total := mandate.PaymentItem{
		Label: "Total Contribution",
		Amount: mandate.PaymentCurrencyAmount{
			Currency: intent.Currency,
			Value:    intent.Amount,
		},
	}
	contents := mandate.CartContents{
		ID:                           id,
		CartExpiry:                   mandate.FormatTimestamp(now.Add(mandate.CartTTL)),
		MerchantName:                 orgName,
		UserCartConfirmationRequired: false,
		PaymentRequest: mandate.PaymentRequest{
			MethodData: []mandate.PaymentMethodData{{
				SupportedMethods: "CARD",
				Data: map[string]any{
					"supported_networks": supportedNetworks,
					"supported_types":    supportedTypes,
				},
			}},
			Details: mandate.PaymentDetailsInit{
				ID: "order_" + id,
				DisplayItems: []mandate.PaymentItem{{
					Label:  fmt.Sprintf("Tech Empowerment Funding: %s", orgName),
					Amount: total.Amount,
				}},
				Total: total,
			},
			Options: mandate.PaymentOptions{RequestShipping: false},
		},
	}

	// The signature covers the contents only, never itself.
	sig, err := canonical.Signature(contents)
	if err != nil {
		return nil, fmt.Errorf("chain: sign cart contents: %w", err)
	}

	cart := &mandate.CartMandate{
		Contents:              contents,
		MerchantAuthorization: sig,
		Timestamp:             mandate.FormatTimestamp(now),
	}

	rawCart, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("chain: encode cart mandate: %w", err)
	}
	if err := c.store.Put(ctx, sessionID, mandate.KeyCartMandate, rawCart); err != nil {
		return nil, err
	}

	c.log.Info("cart mandate created",
		"session_id", sessionID,
		"cart_id", id,
		"merchant_name", orgName,
		"cart_expiry", contents.CartExpiry,
		"signature", sig,
	)
	_ = c.audit.Record(ctx, sessionID, audit.EventTransition, audit.ActionCartCreated, string(mandate.StageCart), map[string]any{
		"cart_id":       id,
		"merchant_name": orgName,
		"amount":        intent.Amount,
	})

	return cart, nil
}
