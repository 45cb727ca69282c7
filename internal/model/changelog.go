package model

import "time"

// ChangeCause classifies why a change happened.  User-initiated edits,
// system-generated corrections (such as conflict evictions) and batch
// operations are distinguished in the audit trail.
type ChangeCause string

const (
	CauseUser   ChangeCause = "USER"
	CauseSystem ChangeCause = "SYSTEM"
	CauseBatch  ChangeCause = "BATCH"
)

// Change actions.  FieldUpdated covers generic before/after field changes;
// garage transfers and fine-grained position updates are semantically
// distinct record kinds and get their own actions.  A single update can emit
// all three kinds independently.
const (
	ActionFieldUpdated    = "FIELD_UPDATED"
	ActionGarageTransfer  = "GARAGE_TRANSFER"
	ActionPositionUpdated = "POSITION_UPDATED"
)

// ChangeEntry mirrors the 'changelog' table: one row per meaningful mutation,
// written inside the same transaction as the mutation itself.  The engine
// never reads audit history back.
type ChangeEntry struct {
	ID         uint64      // changelog.id
	EntityType string      // changelog.entity_type (e.g. "truck")
	EntityID   uint64      // changelog.entity_id
	Action     string      // changelog.action
	Field      string      // changelog.field
	OldValue   string      // changelog.old_value
	NewValue   string      // changelog.new_value
	Cause      ChangeCause // changelog.cause
	ActorID    uint64      // changelog.actor_id (0 for system)
	CreatedAt  time.Time   // changelog.created_at
}
