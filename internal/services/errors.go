package services

import "errors"

// ErrUnauthorized is returned for a wrong password or an invalid token.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError marks a request that is rejected before anything is written.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// isValidation reports whether err is (or wraps) a ValidationError.
func isValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
