// Package errors carries coded errors through the layers around scene
// synthesis: dataset sources, configuration, rendering, interaction and the
// HTTP API. Synthesis itself never fails.
//
// Every *Error has a Code. The CLI prints the message, the server turns the
// code into a status with HTTPStatus and echoes it in the response body.
//
//	err := errors.New(errors.ErrCodeStructureNotFound, "no structure %q", id)
//	errors.Is(err, errors.ErrCodeStructureNotFound) // true
//
//	errors.Wrap(errors.ErrCodeSource, err, "read %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error class.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidLanguage Code = "INVALID_LANGUAGE"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	ErrCodeNotFound          Code = "NOT_FOUND"
	ErrCodeStructureNotFound Code = "STRUCTURE_NOT_FOUND"
	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"

	// A click landed on a primitive with no target cell.
	ErrCodeNotInteractive Code = "NOT_INTERACTIVE"

	ErrCodeSource  Code = "SOURCE_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// httpStatus maps codes to the status the API answers with. Codes not listed
// are server errors.
var httpStatus = map[Code]int{
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeInvalidFormat:     http.StatusBadRequest,
	ErrCodeInvalidLanguage:   http.StatusBadRequest,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeStructureNotFound: http.StatusNotFound,
	ErrCodeNotInteractive:    http.StatusConflict,
	ErrCodeSource:            http.StatusBadGateway,
	ErrCodeTimeout:           http.StatusGatewayTimeout,
	ErrCodeUnsupported:       http.StatusNotImplemented,
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// as finds the outermost *Error in err's chain.
func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// GetCode returns the outermost code in err's chain, or "" for uncoded errors.
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix and cause. Uncoded
// errors are returned as their Error string.
func UserMessage(err error) string {
	if e, ok := as(err); ok {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus returns the response status for err. Uncoded errors map to 500.
func HTTPStatus(err error) int {
	if s, ok := httpStatus[GetCode(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}
