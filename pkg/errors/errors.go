// Package errors defines the error taxonomy shared by the store and the
// form controller.
//
// Three categories reach the user:
//
//   - ValidationError: the form input was rejected before any store call.
//   - ConnectionError: a database connection could not be opened.
//   - QueryError     : a statement failed on an open connection.
//
// A declined delete confirmation is not an error at all and has no type.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
	ErrConnection = errors.New("database connection failed")
	ErrQuery      = errors.New("database query failed")
)

type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConnectionError wraps whatever the driver returned while opening or
// pinging a connection: auth, network and driver failures all look alike.
type ConnectionError struct {
	Err error
}

func (e ConnectionError) Error() string {
	return e.Err.Error()
}

func (e ConnectionError) Unwrap() []error {
	return []error{ErrConnection, e.Err}
}

type QueryError struct {
	Op  string
	Err error
}

func (e QueryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e QueryError) Unwrap() []error {
	return []error{ErrQuery, e.Err}
}

func NewConnectionError(err error) error {
	return ConnectionError{Err: err}
}

func NewQueryError(op string, err error) error {
	return QueryError{Op: op, Err: err}
}
