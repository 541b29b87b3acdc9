package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/punchclock/internal/db"
)

// FailOnNthExecUoW is a UnitOfWork whose transaction fails the FailOn-th
// write (counting from 1) with Err. Reads are never counted. Use it to
// check that a multi-write use case, such as deleting a user together
// with their logs, leaves nothing behind when a later write fails.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(ctx, &countingTx{DBTX: tx, failOn: u.FailOn, err: u.Err}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type countingTx struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
	err    error
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.writes.Add(1) == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
