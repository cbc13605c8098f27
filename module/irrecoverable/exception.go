package irrecoverable

import (
	"errors"
	"fmt"
)

// exception represents an unexpected error. An unexpected error is any error
// returned by a function other than the errors that function documents as
// expected. Exceptions indicate a corrupted or broken node state (for example
// an undecodable database value) and must not be handled as benign.
type exception struct {
	err error
}

func (e exception) Error() string {
	return e.err.Error()
}

func (e exception) Unwrap() error {
	return e.err
}

// NewException wraps the input error as an exception.
func NewException(err error) error {
	return exception{err: err}
}

// NewExceptionf is NewException with formatting.
func NewExceptionf(msg string, args ...any) error {
	return NewException(fmt.Errorf(msg, args...))
}

// IsException returns true if the error chain contains an exception.
func IsException(err error) bool {
	var e exception
	return errors.As(err, &e)
}
