package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL CHECK(length(name) > 0),
		email      TEXT NOT NULL CHECK(length(email) > 0),
		avatar_url TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS logs (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date       TEXT NOT NULL,
		time_in    TEXT NOT NULL,
		time_out   TEXT,
		break_time INTEGER NOT NULL DEFAULT 0 CHECK(break_time >= 0),
		status     TEXT NOT NULL DEFAULT 'Present',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_logs_date ON logs(date)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_user_date ON logs(user_id, date)`,

	// At most one open entry per user and day.
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_logs_open_session ON logs(user_id, date) WHERE time_out IS NULL`,

	`CREATE INDEX IF NOT EXISTS idx_users_created ON users(created_at)`,

	`CREATE TABLE IF NOT EXISTS preferences (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}
