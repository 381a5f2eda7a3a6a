package feeds

import (
	"errors"
	"fmt"
)

var (
	ErrTitleRequired   = errors.New("feeds: title is required")
	ErrContentRequired = errors.New("feeds: content is required")
	ErrAliasInvalid    = errors.New("feeds: alias contains invalid characters")
	ErrAliasExists     = errors.New("feeds: alias already exists")
	ErrFeedIDRequired  = errors.New("feeds: feed id required")
	ErrAuthorRequired  = errors.New("feeds: author id required")
	ErrFeedNotVisible  = errors.New("feeds: feed is not visible")
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

// AliasExistsError reports the conflicting alias alongside the sentinel.
type AliasExistsError struct {
	Alias string
}

func (e *AliasExistsError) Error() string {
	if e == nil || e.Alias == "" {
		return ErrAliasExists.Error()
	}
	return fmt.Sprintf("%s: alias=%s", ErrAliasExists.Error(), e.Alias)
}

func (e *AliasExistsError) Unwrap() error {
	return ErrAliasExists
}
