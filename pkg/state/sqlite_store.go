package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on an embedded sqlite database, so a
// session's records survive process restarts between stages.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at path and runs the
// migration. Use ":memory:" for an ephemeral store in tests.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("state: open sqlite %q: %w", path, err)
	}
	// A pooled second connection to ":memory:" would see a different
	// database; the store is a single-writer register anyway.
	db.SetMaxOpenConns(1)
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore wraps an existing database handle.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS stage_records (
		session_id TEXT NOT NULL,
		stage_key  TEXT NOT NULL,
		record     JSON NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (session_id, stage_key)
	);`
	_, err := s.db.ExecContext(context.Background(), query)
	if err != nil {
		return fmt.Errorf("state: migrate: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, sessionID, key string) (json.RawMessage, error) {
	var record []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM stage_records WHERE session_id = ? AND stage_key = ?`,
		sessionID, key,
	).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("state: get %s/%s: %w", sessionID, key, err)
	}
	return json.RawMessage(record), nil
}

func (s *SQLiteStore) Put(ctx context.Context, sessionID, key string, record json.RawMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stage_records (session_id, stage_key, record, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id, stage_key)
		DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		sessionID, key, []byte(record), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("state: put %s/%s: %w", sessionID, key, err)
	}
	return nil
}

func (s *SQLiteStore) Keys(ctx context.Context, sessionID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT stage_key FROM stage_records WHERE session_id = ? ORDER BY stage_key`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("state: keys %s: %w", sessionID, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
