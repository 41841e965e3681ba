//go:build property
// +build property

// Property-based tests for canonicalization and signature determinism.
package canonical

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestSignatureDeterminism verifies Signature(obj) == Signature(obj)
// for arbitrary string-keyed objects.
func TestSignatureDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("signature is deterministic", prop.ForAll(
		func(keys []string, values []string) bool {
			obj := make(map[string]any)
			for i := 0; i < len(keys) && i < len(values); i++ {
				if keys[i] != "" {
					obj[keys[i]] = values[i]
				}
			}

			s1, err1 := Signature(obj)
			s2, err2 := Signature(obj)
			if err1 != nil || err2 != nil {
				return err1 != nil && err2 != nil
			}
			return s1 == s2
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// TestCanonicalFormStable verifies that the canonical form of an object
// never depends on anything but its contents.
func TestCanonicalFormStable(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("canonical bytes are stable", prop.ForAll(
		func(a, b string, n int64) bool {
			obj := map[string]any{"a": a, "b": b, "n": n}
			b1, err1 := Marshal(obj)
			b2, err2 := Marshal(obj)
			if err1 != nil || err2 != nil {
				return false
			}
			return string(b1) == string(b2)
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
