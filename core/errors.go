package core

import (
	"net/http"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific field.
// Field is the flattened path of the field in the submitted draft,
// eg. "quizQuestions[2].options[0].answerName".
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
		return ""
	}
	return err.Err.Error()
}

// FieldMap flattens the per-field errors into a path -> message mapping.
func (err ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(err.Fields))
	for _, fld := range err.Fields {
		m[fld.Field] = fld.Error
	}
	return m
}

// APIError is a non-2xx response from the backend. The backend's message is
// carried verbatim; no parsing of the message text is ever done on it.
type APIError struct {
	StatusCode int
	Message    string
}

func NewAPIError(code int, msg string) *APIError {
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &APIError{StatusCode: code, Message: msg}
}

func (err *APIError) Error() string {
	return err.Message
}

// IsAuthError reports whether err is a backend response signalling a missing
// or insufficient credential. Detection is structural (status code), never
// based on the message text.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}
