// Package apperr defines the error kinds domain operations report to the
// transport layer.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidKey         = errors.New("invalid key")
	ErrInvalidInput       = errors.New("invalid input")
)

// Error pairs a kind with the message shown to the client.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func New(kind error, detail string) error {
	return &Error{Kind: kind, Detail: detail}
}

func Unauthenticated(detail string) error { return New(ErrUnauthenticated, detail) }
func Forbidden(detail string) error       { return New(ErrForbidden, detail) }
func NotFound(detail string) error        { return New(ErrNotFound, detail) }
func Conflict(detail string) error        { return New(ErrConflict, detail) }
func InvalidCredentials(detail string) error {
	return New(ErrInvalidCredentials, detail)
}
func InvalidKey(detail string) error   { return New(ErrInvalidKey, detail) }
func InvalidInput(detail string) error { return New(ErrInvalidInput, detail) }

// Status returns the HTTP status for err. Errors without a known kind map
// to 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidKey),
		errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Detail returns the client-facing message carried by err, or "" when err
// has no kind.
func Detail(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return ""
}
