package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/wisemind/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertUser(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO users (id, email, password_hash, created_at, last_active_at)
		VALUES (?, ?, 'hash', 0, 0)`, id, id+"@example.test")
	return err
}

func userExists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM users WHERE id = ?`, id).Scan(&n))
	return n > 0
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertUser(ctx, tx, "u1")
	})
	require.NoError(t, err)

	assert.True(t, userExists(t, database, "u1"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertUser(ctx, tx, "u2"); err != nil {
			return err
		}
		return errors.New("seeding documents failed")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seeding documents failed")

	assert.False(t, userExists(t, database, "u2"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := newUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertUser(ctx, tx, "u3")
			panic("boom")
		})
	})

	assert.False(t, userExists(t, database, "u3"))
}

type countingTx struct {
	db.DBTX
	execs *int
}

func (c countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	*c.execs++
	return c.DBTX.ExecContext(ctx, query, args...)
}

func TestRunTx_WrapsHandle(t *testing.T) {
	database, _ := newUoW(t)
	execs := 0
	uow := db.UnitOfWorkFunc(func(ctx context.Context, fn db.TxFunc) error {
		return db.RunTx(ctx, database, func(tx *sql.Tx) db.DBTX {
			return countingTx{DBTX: tx, execs: &execs}
		}, fn)
	})

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertUser(ctx, tx, "u4"); err != nil {
			return err
		}
		return insertUser(ctx, tx, "u5")
	})
	require.NoError(t, err)

	assert.Equal(t, 2, execs)
	assert.True(t, userExists(t, database, "u4"))
	assert.True(t, userExists(t, database, "u5"))
}
