package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return fmt.Sprintf("%s: %s", err.Fields[0].Field, err.Fields[0].Error)
		}
		return ""
	}
	return err.Err.Error()
}

// APIError is a failed call to the remote platform API: a non-2xx status,
// an unreachable host or a body that could not be decoded.
type APIError struct {
	Status  int    // 0 when the request never got a response
	Message string // server-provided `message` when present
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error (status %d)", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// ErrorMessage extracts the server-provided message from err, falling back
// to the per-operation default when there is none to show.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
