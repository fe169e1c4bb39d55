package errors

import (
	"errors"
	"fmt"
)

// Internal error values. None of these cross the network boundary directly, they are
// coerced into the oauthmodel taxonomy first.
var (
	// Storage errors
	ErrNotFound = errors.New("not found")
	ErrEmptyKey = errors.New("key cannot be empty")

	// Configuration errors
	ErrInvalidURI = errors.New("uri must be absolute")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
