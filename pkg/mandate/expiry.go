package mandate

import (
	"fmt"
	"time"
)

// ParseTimestamp parses an RFC 3339 UTC timestamp. Both the `Z` suffix
// and an explicit numeric offset (`+00:00`) are accepted as equivalent;
// producers in the wild emit either form.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrMalformedTimestamp, s, err)
	}
	return t, nil
}

// FormatTimestamp renders t in the wire form used by every record.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ValidateExpiry checks a credential's logical deadline against now.
// It returns an ExpiredError when the deadline has passed and a wrapped
// ErrMalformedTimestamp when the field cannot be parsed. Pure: callers
// log the remaining validity themselves.
func ValidateExpiry(stage Stage, expiry string, now time.Time) error {
	t, err := ParseTimestamp(expiry)
	if err != nil {
		return err
	}
	if t.Before(now) {
		return &ExpiredError{Stage: stage, Expiry: expiry}
	}
	return nil
}

// Remaining reports how long a credential stays valid from now. Zero is
// returned for malformed or already-expired deadlines; it exists for
// observability only and never gates a transition.
func Remaining(expiry string, now time.Time) time.Duration {
	t, err := ParseTimestamp(expiry)
	if err != nil || t.Before(now) {
		return 0
	}
	return t.Sub(now)
}
