package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TxFunc is the body of a transaction. It must use tx, never the parent
// *sql.DB.
type TxFunc func(ctx context.Context, tx DBTX) error

// UnitOfWork runs the writes of one request atomically.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// UnitOfWorkFunc adapts a function to UnitOfWork.
type UnitOfWorkFunc func(ctx context.Context, fn TxFunc) error

func (f UnitOfWorkFunc) WithinTx(ctx context.Context, fn TxFunc) error { return f(ctx, fn) }

// SQLiteUnitOfWork runs transactions against one database.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn TxFunc) error {
	return RunTx(ctx, u.db, nil, fn)
}

// RunTx begins a transaction, passes fn the tx (through wrap when non-nil)
// and commits if fn succeeds. An error or panic in fn rolls back.
func RunTx(ctx context.Context, database *sql.DB, wrap func(*sql.Tx) DBTX, fn TxFunc) (err error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	done := false
	defer func() {
		if done {
			return
		}
		rbErr := tx.Rollback()
		if p := recover(); p != nil {
			panic(p)
		}
		if rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rolling back: %w", rbErr))
		}
	}()

	var handle DBTX = tx
	if wrap != nil {
		handle = wrap(tx)
	}
	if err = fn(ctx, handle); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	done = true
	return nil
}
