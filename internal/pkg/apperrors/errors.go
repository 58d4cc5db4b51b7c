package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrCustomerNotFound = fmt.Errorf("customer: %w", ErrNotFound)

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrNoFields = errors.New("no updatable fields supplied")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrEmailExists = fmt.Errorf("email: %w", ErrAlreadyExists)

	ErrLinkedTransactions = errors.New("customer has linked transactions")

	ErrDatabase = errors.New("database error")

	ErrUnauthorized = errors.New("unauthorized")

	ErrConflict = errors.New("resource conflict")
)

const (
	CodeValidationFailed = "validation_failed"
	CodeLine1Required    = "line1_required"
)

// ValidationError names the request fields that failed validation. Code is the
// machine readable reason surfaced to API clients.
type ValidationError struct {
	Code    string
	Field   string
	Fields  []string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	case len(e.Fields) > 0:
		return fmt.Sprintf("validation failed for fields: %s", strings.Join(e.Fields, ", "))
	default:
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewFieldsValidationError reports every invalid field in one error.
func NewFieldsValidationError(fields []string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{
		Code:   CodeValidationFailed,
		Fields: fields,
	})
}

func NewLine1RequiredError() error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{
		Code:    CodeLine1Required,
		Field:   "line1",
		Message: "line1 is required",
	})
}

// LinkedRecordsError blocks a delete while dependent rows still reference the
// target record.
type LinkedRecordsError struct {
	Count int
}

func (e *LinkedRecordsError) Error() string {
	return fmt.Sprintf("%s: %d linked", ErrLinkedTransactions.Error(), e.Count)
}

func (e *LinkedRecordsError) Unwrap() error {
	return ErrLinkedTransactions
}

func NewLinkedTransactionsError(count int) error {
	return &LinkedRecordsError{Count: count}
}

// AppError carries a stable code for failures that surface as opaque 500s.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WrapDatabaseError marks cause as a store failure. The result matches both
// ErrDatabase and cause under errors.Is.
func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}
