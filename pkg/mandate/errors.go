package mandate

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks across stage boundaries.
var (
	ErrExpired            = errors.New("mandate: credential expired")
	ErrMalformedTimestamp = errors.New("mandate: malformed timestamp")
	ErrMissingPredecessor = errors.New("mandate: predecessor record missing")
	ErrInvalidStructure   = errors.New("mandate: predecessor record malformed")
	ErrInvalidInput       = errors.New("mandate: invalid input")
)

// ValidationError reports a bad input value (blank organization,
// out-of-range amount, empty merchant list).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// ExpiredError reports that a predecessor credential's logical deadline
// has passed. The failing stage never advances; the caller restarts from
// the stage that owns the expired record.
type ExpiredError struct {
	Stage  Stage
	Expiry string
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("%s mandate expired at %s", e.Stage, e.Expiry)
}

func (e *ExpiredError) Unwrap() error { return ErrExpired }

// MissingPredecessorError reports that the required prior-stage record
// was not found in state.
type MissingPredecessorError struct {
	Stage Stage
	Key   string
}

func (e *MissingPredecessorError) Error() string {
	return fmt.Sprintf("no %s record in state (key %q): earlier stage must run first", e.Stage, e.Key)
}

func (e *MissingPredecessorError) Unwrap() error { return ErrMissingPredecessor }

// StructuralError reports that a predecessor record exists but does not
// conform to the expected shape. Bad records are refused, never repaired.
type StructuralError struct {
	Stage Stage
	Err   error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s record failed structural validation: %v", e.Stage, e.Err)
}

func (e *StructuralError) Unwrap() error { return ErrInvalidStructure }
