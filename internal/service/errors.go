package service

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when the acting user does not own the target row.
	ErrForbidden = errors.New("not allowed to modify this resource")
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func required(field string) error {
	return invalid(field, field+" is required")
}

func tooLong(field string, max int) error {
	return invalid(field, fmt.Sprintf("%s must be at most %d characters", field, max))
}

// checkText rejects empty values and values longer than max runes (max <= 0 disables the limit).
func checkText(field, value string, max int) error {
	if value == "" {
		return required(field)
	}
	if max > 0 && utf8.RuneCountInString(value) > max {
		return tooLong(field, max)
	}
	return nil
}
