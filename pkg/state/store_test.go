package state_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afara-labs/fundingchain/pkg/state"
)

func stores(t *testing.T) map[string]state.Store {
	t.Helper()
	sqlite, err := state.OpenSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]state.Store{
		"memory": state.NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStore_PutGet(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Get(ctx, "s1", "intent_mandate")
			assert.ErrorIs(t, err, state.ErrNotFound)

			rec := json.RawMessage(`{"intent_id":"fund_X_1_aa"}`)
			require.NoError(t, s.Put(ctx, "s1", "intent_mandate", rec))

			got, err := s.Get(ctx, "s1", "intent_mandate")
			require.NoError(t, err)
			assert.JSONEq(t, string(rec), string(got))
		})
	}
}

func TestStore_OverwriteSupersedes(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Put(ctx, "s1", "intent_mandate", json.RawMessage(`{"v":1}`)))
			require.NoError(t, s.Put(ctx, "s1", "intent_mandate", json.RawMessage(`{"v":2}`)))

			got, err := s.Get(ctx, "s1", "intent_mandate")
			require.NoError(t, err)
			assert.JSONEq(t, `{"v":2}`, string(got))
		})
	}
}

func TestStore_SessionsIsolated(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Put(ctx, "alice", "intent_mandate", json.RawMessage(`{"who":"alice"}`)))

			_, err := s.Get(ctx, "bob", "intent_mandate")
			assert.ErrorIs(t, err, state.ErrNotFound)
		})
	}
}

func TestStore_Keys(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Put(ctx, "s1", "intent_mandate", json.RawMessage(`{}`)))
			require.NoError(t, s.Put(ctx, "s1", "cart_mandate", json.RawMessage(`{}`)))

			keys, err := s.Keys(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, []string{"cart_mandate", "intent_mandate"}, keys)

			empty, err := s.Keys(ctx, "nobody")
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestMemoryStore_CopyOnRead(t *testing.T) {
	s := state.NewMemoryStore()
	ctx := context.Background()

	rec := json.RawMessage(`{"v":1}`)
	require.NoError(t, s.Put(ctx, "s1", "k", rec))

	got, err := s.Get(ctx, "s1", "k")
	require.NoError(t, err)
	got[2] = 'X' // mutate the returned slice

	again, err := s.Get(ctx, "s1", "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(again), "stored record must not alias reader slices")
}
