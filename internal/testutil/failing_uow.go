package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/wisemind/internal/db"
)

// FailingUoW returns a UnitOfWork whose transactions fail their nth write
// (counted from 1) with err. Reads are not counted, and the transaction is
// rolled back like any other failure.
func FailingUoW(database *sql.DB, nth int32, err error) db.UnitOfWork {
	return db.UnitOfWorkFunc(func(ctx context.Context, fn db.TxFunc) error {
		return db.RunTx(ctx, database, func(tx *sql.Tx) db.DBTX {
			return &failingWrites{DBTX: tx, nth: nth, err: err}
		}, fn)
	})
}

type failingWrites struct {
	db.DBTX
	writes atomic.Int32
	nth    int32
	err    error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.writes.Add(1) == f.nth {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
