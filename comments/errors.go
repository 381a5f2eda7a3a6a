package comments

import (
	"errors"
	"fmt"
)

var (
	ErrAuthorRequired   = errors.New("comments: author name is required")
	ErrContentRequired  = errors.New("comments: content is required")
	ErrFeedRequired     = errors.New("comments: feed id is required")
	ErrFeedNotVisible   = errors.New("comments: feed does not accept comments")
	ErrParentMismatch   = errors.New("comments: parent belongs to a different feed")
	ErrNestedReply      = errors.New("comments: replies cannot be nested further")
	ErrCommentIDMissing = errors.New("comments: comment id is required")
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
