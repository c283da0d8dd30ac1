package errors

import (
	"errors"
	"fmt"
)

// Common error types for the Fitbit client
var (
	// Authorization handshake errors
	ErrTokenExchange = errors.New("token exchange produced no token")
	ErrStateMismatch = errors.New("mismatching state, possible cross-site request forgery")
	ErrAuthorization = errors.New("authorization failed")

	// Token lifecycle errors
	ErrRefresh       = errors.New("token refresh failed")
	ErrStorage       = errors.New("token storage error")
	ErrTokenNotFound = errors.New("token not found")
	ErrInvalidToken  = errors.New("invalid token")

	// API errors
	ErrAPI       = errors.New("api request failed")
	ErrNoDevices = errors.New("no devices paired with the account")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New is errors.New, re-exported so callers need a single errors import
func New(text string) error {
	return errors.New(text)
}
