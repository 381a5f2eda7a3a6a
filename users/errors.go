package users

import (
	"errors"
	"fmt"
)

var (
	ErrRegistrationClosed = errors.New("users: registration is closed")
	ErrInvalidToken       = errors.New("users: invalid session token")
	ErrTokenExpired       = errors.New("users: session token expired")
	ErrPermissionDenied   = errors.New("users: permission denied")
	ErrExchangeFailed     = errors.New("users: oauth code exchange failed")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
