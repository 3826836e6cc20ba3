package domain

import (
	"fmt"
	"strings"
)

// ValidationError is returned when a raw upstream record lacks one of the
// fields a canonical listing cannot exist without (id, title, price).
type ValidationError struct {
	Missing []string
}

func NewValidationError(missing ...string) *ValidationError {
	return &ValidationError{Missing: missing}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("listing record is missing required fields: %s", strings.Join(e.Missing, ", "))
}

// StorageError wraps a read/write failure of the storage collaborator.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NotFoundError is returned by single-item lookups that miss.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("listing %q not found", e.ID)
}
