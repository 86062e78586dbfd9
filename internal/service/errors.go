package service

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors for the orchestration layer. The API layer matches them
// with errors.Is and maps them to protocol status codes; no retries or
// local recovery happen below that boundary.
var (
	// ErrNotFound signals a slug/comment/username lookup miss
	ErrNotFound = errors.New("not found")

	// ErrForbidden signals the actor does not own the resource being mutated
	ErrForbidden = errors.New("forbidden")

	// ErrConflict signals a storage-level uniqueness violation
	ErrConflict = errors.New("conflict")
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (class 23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
