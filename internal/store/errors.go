package store

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write violates a unique constraint.
var ErrConflict = errors.New("conflict")

// ErrReferenceMissing is returned when a write references a row that does
// not exist (foreign key violation).
var ErrReferenceMissing = errors.New("referenced record missing")

const (
	pqUniqueViolation     = pq.ErrorCode("23505")
	pqForeignKeyViolation = pq.ErrorCode("23503")
)

// translate maps driver errors onto the package sentinels and leaves
// everything else untouched.
func translate(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		return ErrConflict
	case pqForeignKeyViolation:
		return ErrReferenceMissing
	default:
		return err
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}
