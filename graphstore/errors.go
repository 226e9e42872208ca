package graphstore

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no stored graph matches the lookup.
var ErrNotFound = errors.New("graphstore: graph not found")

// IsNotFound reports whether err signals a missing catalog entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// NameTakenError is returned when saving or renaming a graph to a name
// already present in the catalog.
type NameTakenError struct {
	name string
	err  error
}

// NewNameTakenError creates a NameTakenError for the given graph name,
// wrapping the driver error that reported the conflict.
func NewNameTakenError(name string, err error) *NameTakenError {
	return &NameTakenError{name: name, err: err}
}

// Error implements the error interface.
func (e *NameTakenError) Error() string {
	return fmt.Sprintf("graphstore: graph name %q already taken", e.name)
}

// Unwrap returns the underlying driver error.
func (e *NameTakenError) Unwrap() error {
	return e.err
}

// Name returns the conflicting graph name.
func (e *NameTakenError) Name() string {
	return e.name
}

// IsNameTaken reports whether err is a NameTakenError, possibly wrapped.
func IsNameTaken(err error) bool {
	if err == nil {
		return false
	}
	var e *NameTakenError
	return errors.As(err, &e)
}

// sqlStateError is implemented by driver errors carrying SQLSTATE codes
// (lib/pq, pgx).
type sqlStateError interface {
	SQLState() string
}

// errorCoder is implemented by driver errors exposing string error codes.
type errorCoder interface {
	Code() string
}

// errorNumberer is implemented by driver errors exposing numeric error
// codes (go-sql-driver/mysql).
type errorNumberer interface {
	Number() uint16
}

const (
	// PostgreSQL SQLSTATE class 23: integrity constraint violation.
	pgUniqueViolation = "23505"

	// MySQL duplicate entry for a unique key.
	mysqlDuplicateEntry = 1062
)

// isUniqueViolation reports whether err resulted from a uniqueness
// constraint violation on any supported backend. Driver error types are
// probed through the code interfaces first, with message matching as the
// fallback for drivers that expose neither.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := asError[sqlStateError](err); ok && e.SQLState() == pgUniqueViolation {
		return true
	}
	if e, ok := asError[errorCoder](err); ok && e.Code() == pgUniqueViolation {
		return true
	}
	if e, ok := asError[errorNumberer](err); ok && e.Number() == mysqlDuplicateEntry {
		return true
	}
	return containsAny(err.Error(),
		"Error 1062",                 // MySQL
		"Duplicate entry",            // MySQL
		"violates unique constraint", // Postgres
		"UNIQUE constraint failed",   // SQLite
	)
}

// asError extracts an error implementing T from the error chain.
func asError[T any](err error) (T, bool) {
	var target T
	for err != nil {
		if e, ok := err.(T); ok {
			return e, true
		}
		err = errors.Unwrap(err)
	}
	return target, false
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
