package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afara-labs/fundingchain/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("STATE_BACKEND", "")
	t.Setenv("STATE_DB_PATH", "")
	t.Setenv("RECEIPT_KEY_SEED", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, config.BackendMemory, cfg.StateBackend)
	assert.Equal(t, "fundingchain.db", cfg.StateDBPath)
	assert.Nil(t, cfg.ReceiptKeySeed)
}

func TestLoad_SQLiteBackend(t *testing.T) {
	t.Setenv("STATE_BACKEND", "sqlite")
	t.Setenv("STATE_DB_PATH", "/tmp/chain.db")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, cfg.StateBackend)
	assert.Equal(t, "/tmp/chain.db", cfg.StateDBPath)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STATE_BACKEND", "etcd")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_ReceiptSeed(t *testing.T) {
	t.Setenv("RECEIPT_KEY_SEED", "4242424242424242424242424242424242424242424242424242424242424242")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Len(t, cfg.ReceiptKeySeed, 32)

	t.Setenv("RECEIPT_KEY_SEED", "not-hex")
	_, err = config.Load()
	require.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"WARNING": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		cfg := &config.Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), "level %q", in)
	}
}
