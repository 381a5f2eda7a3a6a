package comments

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes comment use cases.
type Service interface {
	// Create attaches a comment to a visible feed.
	Create(ctx context.Context, req CreateCommentRequest) (*Comment, error)
	// ListByFeed returns the feed's thread tree: roots newest first, each
	// carrying its replies oldest first.
	ListByFeed(ctx context.Context, feedID uuid.UUID) ([]*Comment, error)
	// Delete soft-removes a comment. Moderation only.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateCommentRequest captures the information required to post a comment.
type CreateCommentRequest struct {
	FeedID   uuid.UUID
	ParentID *uuid.UUID
	Author   string
	Email    string
	SiteURL  string
	Content  string
}
