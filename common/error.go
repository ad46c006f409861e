package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrPersistence = errors.New("persistence failure")
	ErrConflict    = errors.New("concurrent modification")
)

type APIError struct {
	Status  int            `json:"-"`
	Message string         `json:"error"`
	Fields  map[string]any `json:"fields,omitempty"`
	Err     error          `json:"-"`
}

func (e APIError) Error() string {
	return e.Message
}

func (e APIError) Unwrap() error {
	return e.Err
}

func Errf(status int, format string, args ...any) APIError {
	return APIError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// NewAPIError creates an APIError with status, message, and optional fields
func NewAPIError(status int, message string, fields map[string]any) APIError {
	return APIError{
		Status:  status,
		Message: message,
		Fields:  fields,
	}
}

// Wrap creates an APIError that keeps err reachable through errors.Is/As.
func Wrap(status int, err error, message string) APIError {
	return APIError{Status: status, Message: message, Err: err}
}

// FromStoreError maps a repository error to an API error. Context errors
// become timeouts so that callers (and webhook senders) retry later.
func FromStoreError(err error, action string) APIError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(http.StatusServiceUnavailable, err, "request timeout")
	case errors.Is(err, context.Canceled):
		return Wrap(http.StatusRequestTimeout, err, "request was canceled")
	case errors.Is(err, ErrNotFound):
		return Wrap(http.StatusNotFound, err, action+": not found")
	case errors.Is(err, ErrConflict):
		return Wrap(http.StatusConflict, err, action+": modified concurrently, retry")
	default:
		return Wrap(http.StatusInternalServerError, fmt.Errorf("%w: %w", ErrPersistence, err), "failed to "+action)
	}
}
