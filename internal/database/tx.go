package database

import (
	"context"
	"database/sql"
)

// WithTx runs fn inside a transaction.  The transaction commits when fn
// returns nil and rolls back otherwise (or on panic).  Occupancy mutations
// and their audit records share one unit of work through this helper, so an
// alternate storage backend only needs to satisfy the same callback contract.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
