// Package apperr defines the closed set of domain error codes and the
// translation from a failed operation to an HTTP status and response body.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code. The set is closed: handlers and
// clients dispatch on these values, so new codes are an API change.
type Code string

const (
	// User errors
	CodeInvalidUser        Code = "InvalidUser"
	CodeConflictUser       Code = "ConflictUser"
	CodeMismatchedPassword Code = "MismatchedPassword"
	CodeUserNotFound       Code = "UserNotFound"

	// Token errors
	CodeInvalidToken    Code = "InvalidToken"
	CodeMismatchedToken Code = "MismatchedToken"
	CodeTokenRequired   Code = "TokenRequired"

	// Task errors
	CodeInvalidTask  Code = "InvalidTask"
	CodeTaskNotFound Code = "TaskNotFound"

	// Common errors
	CodeValidateError   Code = "ValidateError"
	CodeUnexpectedError Code = "UnexpectedError"
)

// HTTPStatus maps a domain code to its HTTP status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidUser, CodeInvalidToken, CodeInvalidTask, CodeValidateError:
		return http.StatusBadRequest
	case CodeMismatchedPassword, CodeMismatchedToken, CodeTokenRequired:
		return http.StatusUnauthorized
	case CodeUserNotFound, CodeTaskNotFound:
		return http.StatusNotFound
	case CodeConflictUser:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error: a code for machines plus a developer-facing
// message. All feature failures are values of this type.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Response is the JSON body sent for every failed request.
type Response struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Translate converts any error into an HTTP status and response body.
// Errors that are not domain errors become 500 UnexpectedError, so every
// failure path produces well-formed JSON.
func Translate(err error) (int, Response) {
	var domainErr *Error
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError, Response{
			Code:    CodeUnexpectedError,
			Message: "unexpected error",
		}
	}
	return domainErr.Code.HTTPStatus(), Response{
		Code:    domainErr.Code,
		Message: domainErr.Message,
	}
}
