// Package audit records structured JSON events for every stage
// transition and every rejected transition of the mandate chain.
package audit

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType defines the category of the audit event.
type EventType string

const (
	EventTransition EventType = "TRANSITION"
	EventRejection  EventType = "REJECTION"
	EventSettlement EventType = "SETTLEMENT"
)

// Actions recorded by the chain.
const (
	ActionIntentCreated    = "INTENT_CREATED"
	ActionCartCreated      = "CART_CREATED"
	ActionPaymentCompleted = "PAYMENT_COMPLETED"
	ActionPaymentDeclined  = "PAYMENT_DECLINED"
	ActionValidationFailed = "VALIDATION_FAILED"
)

// Event represents a structured audit record.
type Event struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id"`
	Type      EventType      `json:"type"`
	Action    string         `json:"action"`
	Stage     string         `json:"stage"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Logger defines the interface for recording audit events.
type Logger interface {
	Record(ctx context.Context, sessionID string, eventType EventType, action, stage string, metadata map[string]any) error
}

// logger implements Logger, writing one JSON event per line to a
// configurable Writer.
type logger struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewLogger creates a Logger writing to os.Stdout.
func NewLogger() Logger {
	return NewLoggerWithWriter(os.Stdout)
}

// NewLoggerWithWriter creates a Logger writing to the given writer.
// This allows injection for testing and custom sinks.
func NewLoggerWithWriter(w io.Writer) Logger {
	if w == nil {
		w = os.Stdout
	}
	return &logger{writer: w}
}

func (l *logger) Record(ctx context.Context, sessionID string, eventType EventType, action, stage string, metadata map[string]any) error {
	event := Event{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Type:      eventType,
		Action:    action,
		Stage:     stage,
		Timestamp: time.Now().UTC(),
		Metadata:  metadata,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.writer.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// Nop returns a Logger that discards every event.
func Nop() Logger {
	return nop{}
}

type nop struct{}

func (nop) Record(context.Context, string, EventType, string, string, map[string]any) error {
	return nil
}
