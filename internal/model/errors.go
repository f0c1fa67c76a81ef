package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPhone        = errors.New("invalid phone number")
	ErrOrderNotFound       = errors.New("order not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrValidation          = errors.New("validation failed")
	ErrUnsupportedMethod   = errors.New("unsupported payment method")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
)

// ProviderError carries an upstream failure together with the raw text the
// provider returned, so callers can surface it unchanged.
type ProviderError struct {
	Provider   PaymentProvider
	Operation  string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %s", e.Provider, e.Operation, e.Body)
	}
	return fmt.Sprintf("%s %s returned %d: %s", e.Provider, e.Operation, e.StatusCode, e.Body)
}

// ValidationError is a user-facing input problem.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
