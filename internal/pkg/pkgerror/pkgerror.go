package pkgerror

import (
	"errors"
	"net/http"
)

type Code int

const (
	CodeInternal Code = iota
	CodeInvalidInput
	CodeNotFound
	CodeConflict
)

func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is an error safe to show to the caller as-is.
type Error struct {
	msg  string
	code Code
	err  error
}

func NewBusiness(msg string, code Code) *Error {
	return &Error{msg: msg, code: code}
}

func Wrap(err error, msg string, code Code) *Error {
	return &Error{msg: msg, code: code, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Message() string { return e.msg }

func (e *Error) Code() Code { return e.code }

func (e *Error) Unwrap() error { return e.err }

// As returns the business error in the chain, if any.
func As(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
