package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TxManager runs repository callbacks inside a single transaction. The
// favorites repository uses it for its check-then-insert, which must see a
// consistent view of the account's rows.
type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

// WithTx begins a transaction, runs fn, and commits. Any error from fn rolls
// the transaction back and is returned unchanged so callers can match it
// with errors.Is.
func (tm *TxManager) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := tm.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
