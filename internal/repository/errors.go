// Package repository provides PostgreSQL persistence for the three
// account kinds and classifies storage conflicts into domain errors.
package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Sentinel errors for the conflict taxonomy. Anything a repository
// returns that does not match one of these is an unclassified storage
// failure.
var (
	// ErrDuplicateKey reports a uniqueness violation on insert.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrMissingField reports a NOT NULL violation.
	ErrMissingField = errors.New("missing required field")
	// ErrFieldTooLong reports a value exceeding its column width.
	ErrFieldTooLong = errors.New("field too long")
	// ErrNotFound reports an absent row where one was required.
	ErrNotFound = errors.New("account not found")
)

// FieldTooLongError names the violated field and its limit.
type FieldTooLongError struct {
	Field string
	Limit int
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("field %s exceeds %d characters", e.Field, e.Limit)
}

// Is makes FieldTooLongError match ErrFieldTooLong in errors.Is chains.
func (e *FieldTooLongError) Is(target error) bool {
	return target == ErrFieldTooLong
}

// Postgres error codes classified into the conflict taxonomy.
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
	pgStringTruncation = "22001"
)

// classifyPgError maps driver errors onto the conflict taxonomy. Errors
// that do not correspond to a known conflict are returned unchanged.
func classifyPgError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case pgUniqueViolation:
		return ErrDuplicateKey
	case pgNotNullViolation:
		return ErrMissingField
	case pgStringTruncation:
		return ErrFieldTooLong
	default:
		return err
	}
}

// checkLength validates value against the column limit before any write
// reaches the database. The database constraint remains the backstop.
func checkLength(field, value string, limit int) error {
	if len(value) > limit {
		return &FieldTooLongError{Field: field, Limit: limit}
	}
	return nil
}
