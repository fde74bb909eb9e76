package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access forbidden")
	ErrRateLimited        = errors.New("rate limit exceeded")

	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidSortKey = fmt.Errorf("%w: unsupported sort key", ErrInvalidInput)
)

// InvalidInput wraps ErrInvalidInput with a field-level detail.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
