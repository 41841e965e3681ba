package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/afara-labs/fundingchain/pkg/audit"
	"github.com/afara-labs/fundingchain/pkg/mandate"
)

// CreateIntent validates the user's funding choice and writes the
// IntentMandate into state, superseding any prior intent for the
// session. Nothing is written when validation fails.
func (c *Chain) CreateIntent(ctx context.Context, sessionID, orgName string, amount float64) (*mandate.IntentMandate, error) {
	if strings.TrimSpace(orgName) == "" {
		err := &mandate.ValidationError{Field: "org_name", Reason: "organization name cannot be empty"}
		c.reject(ctx, sessionID, mandate.StageIntent, err)
		return nil, err
	}
	if amount <= 0 {
		err := &mandate.ValidationError{Field: "amount", Reason: fmt.Sprintf("amount must be positive, got %.2f", amount)}
		c.reject(ctx, sessionID, mandate.StageIntent, err)
		return nil, err
	}
	if amount > mandate.AmountCap {
		err := &mandate.ValidationError{Field: "amount", Reason: fmt.Sprintf("amount exceeds maximum of %d, got %.2f", mandate.AmountCap, amount)}
		c.reject(ctx, sessionID, mandate.StageIntent, err)
		return nil, err
	}

	lock := c.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now().UTC()
	expiry := now.Add(mandate.IntentTTL)

	m := &mandate.IntentMandate{
		IntentID:                     intentID(orgName, now),
		OrgName:                      orgName,
		Amount:                       amount,
		Currency:                     mandate.Currency,
		NaturalLanguageDescription:   fmt.Sprintf("Fund verified initiative: %s with $%.2f", orgName, amount),
		Merchants:                    []string{orgName},
		IntentExpiry:                 mandate.FormatTimestamp(expiry),
		RequiresRefundability:        false,
		UserCartConfirmationRequired: true,
		Timestamp:                    mandate.FormatTimestamp(now),
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("chain: encode intent mandate: %w", err)
	}
	if err := c.store.Put(ctx, sessionID, mandate.KeyIntentMandate, raw); err != nil {
		return nil, err
	}

	c.log.Info("intent mandate created",
		"session_id", sessionID,
		"intent_id", m.IntentID,
		"org_name", orgName,
		"amount", amount,
		"intent_expiry", m.IntentExpiry,
	)
	_ = c.audit.Record(ctx, sessionID, audit.EventTransition, audit.ActionIntentCreated, string(mandate.StageIntent), map[string]any{
		"intent_id": m.IntentID,
		"org_name":  orgName,
		"amount":    amount,
	})

	return m, nil
}
