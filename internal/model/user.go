package model

import "time"

// User mirrors the 'users' table.  Dispatchers may assign spots; viewers can
// only read availability.  The authenticated user ID is carried into the
// audit trail as the acting user of each change.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role (DISPATCHER or VIEWER)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
