package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UnitOfWork groups the statements of one collection write, so a body and
// its journal row are stored together or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// TxRunner is the database/sql UnitOfWork behind the SQLite record store.
type TxRunner struct {
	db *sql.DB
}

func NewTxRunner(database *sql.DB) *TxRunner {
	return &TxRunner{db: database}
}

// WithinTx keeps fn's statements only when fn returns nil and the commit
// succeeds. An error or panic from fn leaves every collection as it was.
func (r *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting collection write: %w", err)
	}

	done := false
	defer func() {
		if done {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && err != nil {
			err = errors.Join(err, fmt.Errorf("discarding collection write: %w", rbErr))
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	done = true
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing collection write: %w", err)
	}
	return nil
}
