package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSnapshotExists   = errors.New("quote snapshot already exists")
	ErrSnapshotNotFound = errors.New("quote snapshot not found")
	ErrAmountMismatch   = errors.New("amount does not match quoted snapshot")
	ErrSnapshotCorrupt  = errors.New("quote snapshot corrupt")
	ErrAmountOutOfRange = errors.New("amount out of range")
)

// DataSourceError reports a missing or malformed catalog/config resource.
// It is fatal for the calculation that observed it.
type DataSourceError struct {
	Resource string
	Path     string
	Err      error
}

func (e *DataSourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("data source %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("data source %s (%s): %v", e.Resource, e.Path, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// ValidationError reports structurally invalid input, detected before any computation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
