// Package apperr defines the domain error kinds shared by all services.
// Handlers map these to HTTP status codes; repositories translate raw
// database failures into them so callers never see driver errors.
package apperr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for errors.Is checks across error kinds.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("already exists")
	ErrStorage    = errors.New("storage failure")
)

// ValidationError reports the first field that failed validation.
// Message is the user-facing reason; Field may be empty for errors
// that are not tied to a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validation builds a field-tagged validation error.
func Validation(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing entity by kind and primary key.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	if e.ID > 0 {
		return fmt.Sprintf("%s with ID %d not found", capitalize(e.Entity), e.ID)
	}
	return fmt.Sprintf("%s not found", capitalize(e.Entity))
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotFound builds a not-found error for the given entity kind and id.
func NotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// DuplicateError reports a uniqueness conflict on a single field.
type DuplicateError struct {
	Entity string
	Field  string
	Value  string
}

func (e *DuplicateError) Error() string {
	if e.Field == "name" {
		return fmt.Sprintf("%s '%s' already exists", capitalize(e.Entity), e.Value)
	}
	return fmt.Sprintf("A %s with %s %s already exists", e.Entity, strings.ToUpper(e.Field), e.Value)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// Duplicate builds a duplicate-key error.
func Duplicate(entity, field, value string) *DuplicateError {
	return &DuplicateError{Entity: entity, Field: field, Value: value}
}

// ReferentialError reports references to rows that do not exist,
// e.g. category ids attached to a book.
type ReferentialError struct {
	Entity     string
	Field      string
	MissingIDs []int64
}

func (e *ReferentialError) Error() string {
	ids := make([]string, len(e.MissingIDs))
	for i, id := range e.MissingIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("%s IDs not found: %s", capitalize(e.Entity), strings.Join(ids, ", "))
}

func (e *ReferentialError) Unwrap() error { return ErrValidation }

// Referential builds a referential error listing the missing ids.
func Referential(entity, field string, missing []int64) *ReferentialError {
	return &ReferentialError{Entity: entity, Field: field, MissingIDs: missing}
}

// StorageError wraps an unanticipated persistence failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *StorageError) Unwrap() error { return ErrStorage }

// Storage wraps err as a persistence failure for the given operation.
func Storage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// IsValidation reports whether err is a validation or referential failure.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err is a not-found failure of any entity kind.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsDuplicate reports whether err is a uniqueness conflict.
func IsDuplicate(err error) bool { return errors.Is(err, ErrDuplicate) }

// IsStorage reports whether err is an unanticipated persistence failure.
func IsStorage(err error) bool { return errors.Is(err, ErrStorage) }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
