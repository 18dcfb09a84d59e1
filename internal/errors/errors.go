// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrTradeNotFound    = errors.New("trade not found")
	ErrStrategyNotFound = errors.New("strategy not found")
	ErrInvalidBackup    = errors.New("invalid backup format")
	ErrNoAuditProvider  = errors.New("audit provider not configured")
	ErrNoTrades         = errors.New("no trades recorded")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrDatabaseError    = errors.New("database error")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// AuditError represents a failure from the external audit provider.
type AuditError struct {
	Provider  string
	Operation string
	Err       error
}

func (e *AuditError) Error() string {
	return fmt.Sprintf("audit error [%s] %s: %v", e.Provider, e.Operation, e.Err)
}

func (e *AuditError) Unwrap() error {
	return e.Err
}

// NewAuditError creates a new AuditError.
func NewAuditError(provider, operation string, err error) *AuditError {
	return &AuditError{
		Provider:  provider,
		Operation: operation,
		Err:       err,
	}
}

// StoreError represents a persistence-layer error.
type StoreError struct {
	Key       string
	Operation string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store error [%s] %s: %v", e.Operation, e.Key, e.Err)
	}
	return fmt.Sprintf("store error [%s]: %v", e.Operation, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation, key string, err error) *StoreError {
	return &StoreError{
		Key:       key,
		Operation: operation,
		Err:       err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
