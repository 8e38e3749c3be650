package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for quote snapshots.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Payloads are stored as text, not jsonb, so the hashed bytes survive unchanged.
	createSnapshotsQuery := `
	CREATE TABLE IF NOT EXISTS quote_snapshots (
		id TEXT PRIMARY KEY,
		input_hash TEXT NOT NULL,
		snapshot_hash TEXT NOT NULL,
		amount_gbp_minor BIGINT NOT NULL,
		tier TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		input_json TEXT NOT NULL,
		result_json TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_quote_snapshots_input_hash
	ON quote_snapshots(input_hash);
	`

	statements := []string{
		createSnapshotsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
