// Package apperr defines the error taxonomy shared by the store, the auth guard and the handlers.
// Every failure reaches the client as an HTTP status plus a { "error": message } body, with a
// "details" object when the failure is about specific fields.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeUnauthorized        Code = "UNAUTHORIZED"
	CodeMalformedCredential Code = "MALFORMED_CREDENTIAL"
	CodeInvalidCredential   Code = "INVALID_CREDENTIAL"
	CodeForbidden           Code = "FORBIDDEN"
	CodeNotFound            Code = "NOT_FOUND"
	CodeInvalidPayload      Code = "INVALID_PAYLOAD"
	CodeUnsupportedType     Code = "UNSUPPORTED_TYPE"
	CodeMissingField        Code = "MISSING_FIELD"
	CodeValidation          Code = "VALIDATION"
	CodeConflict            Code = "CONFLICT"
	CodeTooLarge            Code = "TOO_LARGE"
	CodeRateLimited         Code = "RATE_LIMITED"
	CodeInternal            Code = "INTERNAL"
)

// HTTPStatus maps a code onto the status written to the client.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeUnauthorized, CodeMalformedCredential, CodeInvalidCredential:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidPayload, CodeUnsupportedType, CodeMissingField, CodeValidation:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Code    Code
	Message string
	Details map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error carrying the same code, so callers can compare against the sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) HTTPStatus() int { return e.Code.HTTPStatus() }

// WithCause returns a copy of e wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, cause: err}
}

// The messages below are what clients see; they match the strings the frontend already toasts.
var (
	ErrUnauthorized        = &Error{Code: CodeUnauthorized, Message: "Unauthorized"}
	ErrMalformedCredential = &Error{Code: CodeMalformedCredential, Message: "Invalid auth header"}
	ErrInvalidCredential   = &Error{Code: CodeInvalidCredential, Message: "Invalid token"}
	ErrForbidden           = &Error{Code: CodeForbidden, Message: "Forbidden"}
	ErrNotFound            = &Error{Code: CodeNotFound, Message: "Not found"}
	ErrInvalidPayload      = &Error{Code: CodeInvalidPayload, Message: "Invalid data"}
	ErrUnsupportedType     = &Error{Code: CodeUnsupportedType, Message: "Unsupported mime type"}
	ErrMissingField        = &Error{Code: CodeMissingField, Message: "missing required field"}
	ErrValidation          = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrConflict            = &Error{Code: CodeConflict, Message: "conflict"}
	ErrTooLarge            = &Error{Code: CodeTooLarge, Message: "payload too large"}
	ErrRateLimited         = &Error{Code: CodeRateLimited, Message: "too many requests"}
	ErrInternal            = &Error{Code: CodeInternal, Message: "internal server error"}
)

func MissingField(msg string) *Error {
	return &Error{Code: CodeMissingField, Message: msg}
}

func InvalidPayload(msg string) *Error {
	return &Error{Code: CodeInvalidPayload, Message: msg}
}

func Validation(msg string, details map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

func InvalidCredential(err error) *Error {
	return ErrInvalidCredential.WithCause(err)
}

// Status returns the HTTP status for err; anything outside the taxonomy is a 500.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// DetailsOf returns the per-field details attached to err, if any.
func DetailsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}

// Message returns the client-facing message for err. Unknown errors never leak their text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ErrInternal.Message
}
