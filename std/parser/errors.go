package parser

import "errors"

// ErrEndOfInput is returned by NextSession once every session has been
// produced. It marks normal termination, not a failure.
var ErrEndOfInput = errors.New("end of input")

// ErrCapacityExceeded is wrapped by the ParseError returned when a single
// session needs more than the maximum chunk size.
var ErrCapacityExceeded = errors.New("session exceeds maximum chunk size")

type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
