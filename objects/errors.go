package objects

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyObject      = errors.New("objects: object body is empty")
	ErrKeyRequired      = errors.New("objects: object key is required")
	ErrSignatureInvalid = errors.New("objects: signature mismatch")
	ErrURLExpired       = errors.New("objects: signed url expired")
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
