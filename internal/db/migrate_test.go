package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"auth_tokens", "users", "documents", "password_resets", "revoked_tokens"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_AddsSubscriptionColumns(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO users (id, email, password_hash, created_at, last_active_at, subscription_plan)
		VALUES ('u1', 'a@b.c', 'x', 0, 0, 'monthly')`)
	require.NoError(t, err)

	var plan string
	require.NoError(t, db.QueryRow(`SELECT subscription_plan FROM users WHERE id = 'u1'`).Scan(&plan))
	assert.Equal(t, "monthly", plan)
}

func TestMigrate_SingleTokenRow(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO auth_tokens (id, token, saved_at) VALUES ('other', 't', 'now')`)
	assert.Error(t, err, "only the default token row is allowed")
}
