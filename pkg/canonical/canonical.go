// Package canonical provides RFC 8785 (JSON Canonicalization Scheme)
// serialization and the digest-derived signatures used across the
// mandate chain.
//
// Signatures produced here are simulated: they bind a record to its
// exact canonical contents, so any mutation is detectable and signing is
// idempotent, but they are not tied to a merchant private key. Key-bound
// receipt signatures live in the receipt package.
package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// SignaturePrefix marks every mandate signature on the wire.
const SignaturePrefix = "SIG_"

// signatureHexLen is how many hex characters of the digest are kept.
const signatureHexLen = 16

// Marshal returns the RFC 8785 canonical JSON form of v: keys sorted
// lexicographically by UTF-8 bytes, no insignificant whitespace, no HTML
// escaping. Two semantically equal records always canonicalize to the
// same bytes regardless of construction order.
func Marshal(v any) ([]byte, error) {
	intermediate, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonical: marshal failed: %w", err)
	}
	out, err := jcs.Transform(intermediate)
	if err != nil {
		return nil, fmt.Errorf("canonical: transform failed: %w", err)
	}
	return out, nil
}

// Hash returns the SHA-256 hex digest of the canonical form of v.
func Hash(v any) (string, error) {
	b, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return HashBytes(b), nil
}

// HashBytes computes the SHA-256 hex digest of raw bytes.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Signature derives the wire signature for v: the SIG_ prefix plus the
// first 16 hex characters of the canonical digest. Deterministic by
// construction; signing identical contents twice yields the same value.
func Signature(v any) (string, error) {
	h, err := Hash(v)
	if err != nil {
		return "", err
	}
	return SignaturePrefix + h[:signatureHexLen], nil
}
