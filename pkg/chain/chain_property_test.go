//go:build property
// +build property

// Property-based tests for intent validation bounds.
package chain_test

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/afara-labs/fundingchain/pkg/chain"
	"github.com/afara-labs/fundingchain/pkg/mandate"
	"github.com/afara-labs/fundingchain/pkg/state"
)

// TestCreateIntentAmountBounds verifies CreateIntent accepts exactly the
// amounts in (0, 1_000_000] and rejects everything else without writing
// state.
func TestCreateIntentAmountBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("acceptance matches the amount interval", prop.ForAll(
		func(amount float64) bool {
			store := state.NewMemoryStore()
			c := chain.New(store)
			ctx := context.Background()

			_, err := c.CreateIntent(ctx, "prop-session", "She Code Africa", amount)
			inRange := amount > 0 && amount <= mandate.AmountCap

			keys, kerr := store.Keys(ctx, "prop-session")
			if kerr != nil {
				return false
			}
			if inRange {
				return err == nil && len(keys) == 1
			}
			return err != nil && len(keys) == 0
		},
		gen.Float64Range(-2_000_000, 2_000_000),
	))

	properties.TestingRun(t)
}
