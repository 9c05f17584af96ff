package errorutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error codes attached to failed initialization runs.
const (
	CodeSchemaFailed = "SCHEMA_FAILED"
	CodeConflict     = "CONFLICT"
	CodeLocked       = "LOCKED"
	CodeInternal     = "INTERNAL_ERROR"
)

// pgUniqueViolation is the SQLSTATE Postgres reports for duplicate keys.
const pgUniqueViolation = "23505"

// DomainError standardizes application errors.
type DomainError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, details map[string]any, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Details: details, Err: err}
}

func NewSchemaError(err error) error {
	return NewDomainError(CodeSchemaFailed, "create tables", nil, err)
}

func NewConflict(message string, details map[string]any, err error) error {
	return NewDomainError(CodeConflict, message, details, err)
}

func NewLocked(message string, err error) error {
	return NewDomainError(CodeLocked, message, nil, err)
}

func NewInternalError(err error) error {
	return NewDomainError(CodeInternal, "internal error", nil, err)
}

// IsUniqueViolation reports whether err is a duplicate-key error from Postgres or SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// modernc.org/sqlite surfaces SQLITE_CONSTRAINT_UNIQUE through its message.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if IsUniqueViolation(err) {
		return NewDomainError(CodeConflict, "duplicate record", nil, err)
	}
	return NewDomainError(CodeInternal, "internal error", nil, err)
}

// Code returns the classification code for err, or "" for nil.
func Code(err error) string {
	if de := ToDomainError(err); de != nil {
		return de.Code
	}
	return ""
}
