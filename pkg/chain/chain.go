// Package chain implements the three-stage mandate chain: Intent → Cart
// → Payment. Each stage validates its predecessor for presence,
// structure and expiry before it may proceed; failed validation never
// advances the chain and no stage can be skipped.
package chain

import (
	"context"
	"log/slog"
	"sync"

	"github.com/afara-labs/fundingchain/pkg/audit"
	"github.com/afara-labs/fundingchain/pkg/mandate"
	"github.com/afara-labs/fundingchain/pkg/state"
)

// Progress describes how far a session's chain has advanced.
type Progress string

const (
	ProgressNoIntent       Progress = "NO_INTENT"
	ProgressIntentCreated  Progress = "INTENT_CREATED"
	ProgressCartCreated    Progress = "CART_CREATED"
	ProgressPaymentCreated Progress = "PAYMENT_CREATED"
)

// Chain coordinates the stage builders over a shared state store.
//
// Each stage is synchronous and performs no internal parallelism.
// Distinct sessions may run concurrently; within one session every
// read-validate-write sequence holds the session lock, so two racing
// builders cannot both act on the same predecessor record.
type Chain struct {
	store state.Store
	log   *slog.Logger
	audit audit.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Chain) { c.log = l }
}

// WithAudit sets the audit sink. Defaults to a no-op logger.
func WithAudit(a audit.Logger) Option {
	return func(c *Chain) { c.audit = a }
}

// New creates a Chain over the given store.
func New(store state.Store, opts ...Option) *Chain {
	c := &Chain{
		store: store,
		log:   slog.Default(),
		audit: audit.Nop(),
		locks: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// sessionLock returns the mutex guarding one session's records.
func (c *Chain) sessionLock(sessionID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[sessionID] = l
	}
	return l
}

// Progress reports the furthest stage a session has completed, derived
// from which records exist in state.
func (c *Chain) Progress(ctx context.Context, sessionID string) (Progress, error) {
	keys, err := c.store.Keys(ctx, sessionID)
	if err != nil {
		return ProgressNoIntent, err
	}
	have := make(map[string]bool, len(keys))
	for _, k := range keys {
		have[k] = true
	}
	switch {
	case have[mandate.KeyPaymentMandate]:
		return ProgressPaymentCreated, nil
	case have[mandate.KeyCartMandate]:
		return ProgressCartCreated, nil
	case have[mandate.KeyIntentMandate]:
		return ProgressIntentCreated, nil
	default:
		return ProgressNoIntent, nil
	}
}

func (c *Chain) reject(ctx context.Context, sessionID string, stage mandate.Stage, err error) {
	_ = c.audit.Record(ctx, sessionID, audit.EventRejection, audit.ActionValidationFailed, string(stage), map[string]any{
		"error": err.Error(),
	})
}
