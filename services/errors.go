package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is returned for failures the caller should see with a specific status and code.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func Validation(message string) *Error {
	return newError(http.StatusBadRequest, "VALIDATION_ERROR", message)
}

func NotFound(message string) *Error {
	return newError(http.StatusNotFound, "NOT_FOUND", message)
}

// Internal wraps an unexpected storage or system failure.
func Internal(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "INTERNAL_ERROR", Message: message, Err: err}
}

// CodeOf returns the code carried by err, or "" for plain errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
