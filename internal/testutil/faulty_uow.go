package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/coursedraft/internal/db"
)

// FaultyUoW runs callbacks in a real transaction but fails any ExecContext
// whose SQL contains FailOn. Used to prove multi-statement writes roll back.
type FaultyUoW struct {
	DB     *sql.DB
	FailOn string
	Err    error
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &faultyTx{DBTX: tx, failOn: u.FailOn, err: u.Err}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type faultyTx struct {
	db.DBTX
	failOn string
	err    error
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.failOn != "" && strings.Contains(query, f.failOn) {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
