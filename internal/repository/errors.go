// Package repository owns all SQL against the MySQL schema.  These
// sentinel values let handlers distinguish failure scenarios without
// inspecting driver errors.  ErrForbidden means the caller reached for
// an entity outside their company or ownership; ErrConflict means the
// targeted entity is no longer in the state the transition expected
// (room booked by another actor, checkout already resolved, enquiry
// decided concurrently) and the caller must refetch and re-present
// current state rather than retry.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource belonging to a different company or user.  Handlers
// translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a transition cannot proceed because the
// authoritative state moved underneath it.  Handlers translate this
// into an HTTP 409 response and the client refetches.
var ErrConflict = errors.New("conflict")
