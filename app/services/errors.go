package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordMismatch   = errors.New("passwords don't match")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrEmptyReply         = errors.New("reply cannot be empty")
	ErrDelivery           = errors.New("failed to deliver email")
)

// ValidationError reports a record that failed model validation.
type ValidationError struct {
	Entity string
	Err    error
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Entity + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(entity string, err error) error {
	return &ValidationError{Entity: entity, Err: err}
}
