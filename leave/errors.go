/*
errors.go - Error taxonomy for the leave engine

PURPOSE:
  All engine error kinds in one place. The HTTP layer maps these to
  status codes; the engine itself never retries and never maps.

CATEGORIES:
  1. Not-found: the target entity id does not exist. Surfaced for
     update/show; deletes treat it as "no effect" (idempotent delete).
  2. Forbidden: role or ownership missing for the operation.
  3. Edit conflict: a non-administrator touching an approved request.

Ledger no-ops (balance target vanished mid-operation) are logged by the
ledger and never surfaced; see ledger.go.
*/
package leave

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when an operation targets an entity id
	// that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller lacks the role or
	// ownership required for the operation. Never silently downgraded.
	ErrForbidden = errors.New("forbidden")

	// ErrEditConflict is returned when a non-administrator attempts to
	// mutate an approved vacation request.
	ErrEditConflict = errors.New("vacations has been approved, you can not edit it")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// NotFoundError carries the entity kind and id that was missing.
type NotFoundError struct {
	Kind string // "user", "contract", "vacation request"
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ForbiddenError carries who tried what.
type ForbiddenError struct {
	ActorID int64
	Action  string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("actor %d may not %s", e.ActorID, e.Action)
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// =============================================================================
// HELPERS
// =============================================================================

// IsNotFound reports whether err indicates a missing entity.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsClientError reports whether err is due to the caller rather than
// the infrastructure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrEditConflict)
}
