package catalog

import (
	"errors"
	"fmt"
)

// ValidationError names the first invalid field of an admin submission, in
// the documented check order, so the UI can highlight it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	// ErrDuplicateProductID blocks a create/update whose productId is
	// already taken by another item.
	ErrDuplicateProductID = errors.New("productId already in use")

	// ErrNotFound is returned when an update/delete target is missing.
	ErrNotFound = errors.New("not found")
)
