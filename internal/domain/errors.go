package domain

import (
	"errors"
	"sort"
	"strings"
)

// Sentinel errors shared by services and adapters.
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicateSubmission  = errors.New("duplicate submission")
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrDuplicateEmail       = errors.New("email already in use")
	ErrStoreUnavailable     = errors.New("registration store unavailable")
)

// Payment gateway errors. They only affect the payment sub-form.
var (
	ErrPaymentGateway      = errors.New("payment gateway error")
	ErrPaymentUnavailable  = errors.New("card payments are not available")
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
	ErrAmountMismatch      = errors.New("payment amount does not match selection total")
)

// FieldErrors maps a form field name to a human-readable message.
type FieldErrors map[string]string

// Fields returns the field names in sorted order.
func (f FieldErrors) Fields() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidationError blocks a submission. The store is never contacted when it is returned.
type ValidationError struct {
	Fields FieldErrors
}

// NewValidationError wraps a non-empty field map.
func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields.Fields(), ", ")
}

// Is makes errors.Is(err, ErrInvalidInput) true for validation failures.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
