package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the
// whole list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Client side: the single stored credential.
	`CREATE TABLE IF NOT EXISTS auth_tokens (
		id       TEXT PRIMARY KEY CHECK(id = 'default'),
		token    TEXT NOT NULL,
		email    TEXT NOT NULL DEFAULT '',
		saved_at TEXT NOT NULL
	)`,

	// Development server.
	`CREATE TABLE IF NOT EXISTS users (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL DEFAULT '',
		email          TEXT NOT NULL UNIQUE,
		password_hash  TEXT NOT NULL,
		created_at     INTEGER NOT NULL,
		last_active_at INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS documents (
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		resource   TEXT NOT NULL,
		doc_key    TEXT NOT NULL DEFAULT '',
		body       TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, resource, doc_key)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_documents_resource ON documents(user_id, resource)`,

	`CREATE TABLE IF NOT EXISTS password_resets (
		email       TEXT PRIMARY KEY,
		code        TEXT NOT NULL,
		reset_token TEXT NOT NULL DEFAULT '',
		expires_at  INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS revoked_tokens (
		jti        TEXT PRIMARY KEY,
		expires_at INTEGER NOT NULL
	)`,

	`ALTER TABLE users ADD COLUMN subscription_plan TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE users ADD COLUMN subscription_renews_at INTEGER NOT NULL DEFAULT 0`,
}
