package repository

import (
	"errors"
	"fmt"

	"tagcrm/pkg/domain"
)

// ErrNotFound reports that a record with the requested id does not exist.
var ErrNotFound = errors.New("record not found")

// NotFoundError identifies the missing record. It matches ErrNotFound under
// errors.Is.
type NotFoundError struct {
	Collection domain.Collection
	ID         int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s: id %d not found", e.Collection, e.ID)
}

// Is reports whether target is ErrNotFound.
func (e NotFoundError) Is(target error) bool { return target == ErrNotFound }
