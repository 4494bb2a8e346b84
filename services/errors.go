package services

import (
	"errors"
	"fmt"
)

// Outcomes the HTTP layer maps to distinct statuses: 409 for duplicates,
// 404 for missing references. Anything else from storage is a 500.
var (
	ErrDuplicateEntry = errors.New("validation already recorded")
	ErrNotFound       = errors.New("not found")
)

// notFound wraps ErrNotFound with the missing entity for the response body.
func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}
