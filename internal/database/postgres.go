package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

// NewPostgresConnection opens and verifies a Postgres connection
func NewPostgresConnection(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate applies the schema. Statements are idempotent so startup can run
// them unconditionally.
func Migrate(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS groups (
			id          BIGSERIAL PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT,
			currency    TEXT NOT NULL DEFAULT 'USD',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS participants (
			id        BIGSERIAL PRIMARY KEY,
			group_id  BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			name      TEXT NOT NULL,
			is_owner  BOOLEAN NOT NULL DEFAULT FALSE,
			joined_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS ledger_events (
			id          UUID PRIMARY KEY,
			group_id    BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			kind        TEXT NOT NULL,
			title       TEXT NOT NULL,
			amount      NUMERIC(12,2) NOT NULL,
			payer_id    BIGINT,
			receiver_id BIGINT,
			from_id     BIGINT,
			to_id       BIGINT,
			created_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS event_splits (
			event_id       UUID NOT NULL REFERENCES ledger_events(id) ON DELETE CASCADE,
			participant_id BIGINT NOT NULL,
			amount         NUMERIC(12,2) NOT NULL,
			PRIMARY KEY (event_id, participant_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_events_group ON ledger_events(group_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_participants_group ON participants(group_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply migration: %w", err)
		}
	}
	return nil
}
