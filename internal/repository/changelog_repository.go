package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/truck-garage-allocation/internal/model"
)

// ChangelogRepo persists audit records.  Every meaningful mutation writes one
// row, inside the same transaction as the mutation itself, so either both
// commit or neither does.  The service never reads the changelog back; it is
// consumed by reporting tools outside this codebase.
type ChangelogRepo struct {
	db *sql.DB
}

// NewChangelogRepo returns a ChangelogRepo bound to the provided database.
func NewChangelogRepo(db *sql.DB) *ChangelogRepo { return &ChangelogRepo{db: db} }

// RecordTx inserts a single audit entry within the provided transaction.
func (r *ChangelogRepo) RecordTx(ctx context.Context, tx *sql.Tx, e model.ChangeEntry) error {
	var actor interface{}
	if e.ActorID != 0 {
		actor = e.ActorID
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO changelog (entity_type, entity_id, action, field, old_value, new_value, cause, actor_id)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.EntityType, e.EntityID, e.Action, e.Field, e.OldValue, e.NewValue, string(e.Cause), actor)
	return err
}

// RecordAllTx inserts multiple audit entries in one statement.  Passing an
// empty slice has no effect and returns nil.
func (r *ChangelogRepo) RecordAllTx(ctx context.Context, tx *sql.Tx, entries []model.ChangeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `INSERT INTO changelog (entity_type, entity_id, action, field, old_value, new_value, cause, actor_id) VALUES `
	args := make([]interface{}, 0, len(entries)*8)
	for i, e := range entries {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?)"
		var actor interface{}
		if e.ActorID != 0 {
			actor = e.ActorID
		}
		args = append(args, e.EntityType, e.EntityID, e.Action, e.Field, e.OldValue, e.NewValue, string(e.Cause), actor)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
