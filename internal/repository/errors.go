// Package repository implements the data access layer over MySQL.  Sentinel
// errors defined here let handlers distinguish failure scenarios without
// inspecting driver errors: a missing truck on the single-update path maps to
// HTTP 404, a duplicate user email to 409.
package repository

import "errors"

// ErrTruckNotFound is returned when a referenced truck does not exist.  The
// single-update assignment path aborts on it; batch updates skip the truck
// silently instead.
var ErrTruckNotFound = errors.New("truck not found")

// ErrEmailExists is returned when registering a user with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")
