package entity

import (
	"errors"
	"fmt"
)

// ErrTaskNotFound is returned when a task does not exist or belongs to
// another session. Callers cannot tell the two apart.
var ErrTaskNotFound = errors.New("task not found")

// ErrWeatherUnavailable means the weather service answered but returned
// nothing usable.
var ErrWeatherUnavailable = errors.New("weather data unavailable")

// ValidationError reports rejected input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
