// Package service holds what the command and query services share: the
// error taxonomy every adapter maps from, and input validation.
package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrStorage      = errors.New("storage failure")
)

// ValidationError carries every failed field with its message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid builds a single-field ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// NotFoundError names the entity that was missing.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError names the field whose uniqueness would be violated. Field is
// empty when the colliding field could not be determined.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Message
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// StorageError hides the underlying persistence failure from callers while
// keeping it available for logging.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func (e *StorageError) Unwrap() error { return e.Err }

func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
