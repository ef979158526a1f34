package usecase

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrConflict              = crerr.New("resource conflict")
	ErrPersistence           = crerr.New("persistence failure")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
)

// storeFailure wraps a repository error with the operation name and marks it
// as a persistence failure unless it already carries a usecase category.
func storeFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	wrapped := fmt.Errorf("%s: %w", op, err)
	if crerr.IsAny(err, ErrInvalidInput, ErrNotFound, ErrConflict, ErrPersistence, ErrDependencyUnavailable) {
		return wrapped
	}
	return crerr.Mark(wrapped, ErrPersistence)
}

// Is reports whether err belongs to the usecase category target. It sees
// through marks added by storeFailure.
func Is(err, target error) bool {
	return crerr.Is(err, target)
}
