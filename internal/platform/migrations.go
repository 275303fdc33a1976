package platform

import (
	"context"
	"database/sql"
	"strings"
)

// schema contains the DDL for all platform tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id               TEXT PRIMARY KEY,
		username         TEXT NOT NULL,
		username_lc      TEXT NOT NULL UNIQUE,
		email            TEXT NOT NULL DEFAULT '',
		password_hash    TEXT NOT NULL DEFAULT '',
		role             TEXT NOT NULL DEFAULT 'USER',
		account_status   TEXT NOT NULL DEFAULT 'PENDING',
		rejection_reason TEXT NOT NULL DEFAULT '',
		club_id          TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS clubs (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		country    TEXT NOT NULL DEFAULT '',
		city       TEXT NOT NULL DEFAULT '',
		founded    INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS events (
		id              TEXT PRIMARY KEY,
		host_club_id    TEXT NOT NULL,
		name            TEXT NOT NULL,
		start_date      TEXT NOT NULL,
		end_date        TEXT NOT NULL,
		entry_fee_cents INTEGER NOT NULL DEFAULT 0,
		max_teams       INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS team_registrations (
		id            TEXT PRIMARY KEY,
		event_id      TEXT NOT NULL REFERENCES events(id),
		club_id       TEXT NOT NULL,
		team_name     TEXT NOT NULL,
		age_grade     TEXT NOT NULL DEFAULT '',
		squad_size    INTEGER NOT NULL DEFAULT 0,
		fee_cents     INTEGER NOT NULL DEFAULT 0,
		registered_by TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_users_account_status ON users(account_status)`,
	`CREATE INDEX IF NOT EXISTS idx_events_start_date ON events(start_date)`,
	`CREATE INDEX IF NOT EXISTS idx_registrations_event_id ON team_registrations(event_id)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, strings.TrimSpace(stmt)); err != nil {
			return err
		}
	}
	return nil
}
