package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a referenced entity id that does not exist. The
// transport maps it to 404.
var ErrNotFound = errors.New("not found")

// ErrInvalidTransition marks a caller-supplied status the lifecycle
// rules do not allow from the rental's current state.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrValidation marks a payload that is well-formed JSON but violates
// a field rule (negative quantity, returned > taken, and so on).
var ErrValidation = errors.New("validation failed")

// ErrInvalidCredentials marks a failed login attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrConflict marks a delete blocked by rentals that still reference
// the row. The transport maps it to 409.
var ErrConflict = errors.New("conflict")

// InsufficientStockError is returned when a rental line requests more
// units than the item currently has available. The whole transaction
// rolls back; no partial writes survive.
type InsufficientStockError struct {
	ItemID    string
	Requested int32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: requested %d, available %d", e.ItemID, e.Requested, e.Available)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}

// NotFoundError wraps ErrNotFound with the entity kind and id.
func NotFoundError(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}
