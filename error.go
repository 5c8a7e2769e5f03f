package kbcards

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID    = "invalid"
	EINTERNAL   = "internal"
	ENETWORK    = "network"
	EHTTPSTATUS = "http_status"
	EPARSE      = "parse"
	ELOAD       = "load"
)

// Error represents an application-specific error. Code is machine-readable,
// Message is safe to show to the operator.
type Error struct {
	Code    string
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("kbcards error: code=%s message=%s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("kbcards error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError returns an Error with the given code that wraps err.
func WrapError(code string, err error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// ErrorCode unwraps an application error and returns its code.
// A *LoadError reports ELOAD. Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var le *LoadError
	if errors.As(err, &le) {
		return ELOAD
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var le *LoadError
	if errors.As(err, &le) {
		return le.Error()
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Err != nil {
			return e.Message + ": " + causeMessage(e.Err)
		}
		return e.Message
	}
	return "Internal error."
}

// causeMessage renders a wrapped cause without the "kbcards error:" framing
// when the cause is itself an application error.
func causeMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return ErrorMessage(e)
	}
	return err.Error()
}
