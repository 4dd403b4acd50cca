package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pomo/internal/db"
)

// SQLiteBackend keeps each collection as one row of the collections table.
type SQLiteBackend struct {
	db  db.DBTX
	uow db.UnitOfWork
}

func NewSQLiteBackend(database *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: database, uow: db.NewTxRunner(database)}
}

func (b *SQLiteBackend) Read(ctx context.Context, name string) ([]byte, error) {
	var body string
	err := b.db.QueryRowContext(ctx, `SELECT body FROM collections WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("collection %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading collection %s: %w", name, err)
	}
	return []byte(body), nil
}

// Write replaces the collection body and appends to the write journal in
// one transaction.
func (b *SQLiteBackend) Write(ctx context.Context, name string, data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	return b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO collections (name, body, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
			name, string(data), now)
		if err != nil {
			return fmt.Errorf("writing collection %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO collection_writes (name, bytes, written_at) VALUES (?, ?, ?)`,
			name, len(data), now); err != nil {
			return fmt.Errorf("journaling collection %s: %w", name, err)
		}
		return nil
	})
}

// WriteCount returns how many times the named collection has been written.
func (b *SQLiteBackend) WriteCount(ctx context.Context, name string) (int, error) {
	var n int
	if err := b.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM collection_writes WHERE name = ?`, name).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting writes for %s: %w", name, err)
	}
	return n, nil
}
