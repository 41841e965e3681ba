// Package config loads runtime configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Backends for the shared state store.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds chain runtime configuration.
type Config struct {
	LogLevel      string
	StateBackend  string
	StateDBPath   string
	DirectoryPath string

	// ReceiptKeySeed is an optional 32-byte hex seed for the receipt
	// signing key. When empty a fresh key is generated at startup.
	ReceiptKeySeed []byte
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "INFO"
	}

	backend := strings.ToLower(os.Getenv("STATE_BACKEND"))
	if backend == "" {
		backend = BackendMemory
	}
	if backend != BackendMemory && backend != BackendSQLite {
		return nil, fmt.Errorf("config: unknown STATE_BACKEND %q", backend)
	}

	dbPath := os.Getenv("STATE_DB_PATH")
	if dbPath == "" {
		dbPath = "fundingchain.db"
	}

	var seed []byte
	if raw := os.Getenv("RECEIPT_KEY_SEED"); raw != "" {
		decoded, err := hex.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("config: RECEIPT_KEY_SEED is not valid hex: %w", err)
		}
		seed = decoded
	}

	return &Config{
		LogLevel:       logLevel,
		StateBackend:   backend,
		StateDBPath:    dbPath,
		DirectoryPath:  os.Getenv("DIRECTORY_PATH"),
		ReceiptKeySeed: seed,
	}, nil
}

// SlogLevel maps the configured level name onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
