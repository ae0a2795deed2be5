// Package errors carries a code alongside the message so every layer can decide
// how to report a failure without string matching
package errors

// Import as perr to keep the stdlib errors package free

import (
	stderrs "errors"
	"fmt"
)

// Error is a coded error with an optional cause and offending field
type Error struct {
	code  ErrorCode
	msg   string
	field string
	cause error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.cause == nil:
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// Code is the error's machine-facing code
func (e *Error) Code() ErrorCode { return e.code }

// Field names the input that failed, empty when not tied to one
func (e *Error) Field() string { return e.field }

// Wire is what an API response carries for an error
// Message omits the cause chain so internals stay out of responses
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// WireFrom reduces any error to its wire form; foreign errors become Unknown
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	e, ok := As(err)
	if !ok {
		return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
	}
	return Wire{Code: e.code, Message: e.msg, Field: e.field}
}

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf is the code of the outermost *Error in the chain, else Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether CodeOf(err) is code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// WithField returns a copy of err's *Error naming field; foreign errors pass through
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	cp := *e
	cp.field = field
	return &cp
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return New(code, fmt.Sprintf(format, a...))
}

// Wrap keeps cause reachable through errors.Is and errors.As
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return Wrap(cause, code, fmt.Sprintf(format, a...))
}

func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }
func JSONErrf(format string, a ...any) error    { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error   { return Newf(ErrorCodePanic, format, a...) }
func Unavailablef(format string, a ...any) error {
	return Newf(ErrorCodeUnavailable, format, a...)
}

func DataFormatf(format string, a ...any) error { return Newf(ErrorCodeDataFormat, format, a...) }
func InsufficientDataf(format string, a ...any) error {
	return Newf(ErrorCodeInsufficientData, format, a...)
}
func NotFittedf(format string, a ...any) error    { return Newf(ErrorCodeNotFitted, format, a...) }
func UnknownClassf(format string, a ...any) error { return Newf(ErrorCodeUnknownClass, format, a...) }
