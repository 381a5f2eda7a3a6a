package feeds

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service exposes feed management use cases.
type Service interface {
	Create(ctx context.Context, req CreateFeedRequest) (*Feed, error)
	Update(ctx context.Context, req UpdateFeedRequest) (*Feed, error)
	Get(ctx context.Context, id uuid.UUID) (*Feed, error)
	GetByAlias(ctx context.Context, alias string) (*Feed, error)
	// Resolve accepts either a feed id or an alias, in that order. The public
	// GET endpoint routes through it so canonical URLs work with both forms.
	Resolve(ctx context.Context, ref string) (*Feed, error)
	List(ctx context.Context, req ListFeedsRequest) ([]*Feed, error)
	Delete(ctx context.Context, req DeleteFeedRequest) error
	Tags(ctx context.Context) ([]*TagCount, error)
}

// CreateFeedRequest captures the information required to create a feed.
// Title and Content are mandatory; a blank Summary is derived from Content
// and a blank Alias leaves the feed addressable by id only.
type CreateFeedRequest struct {
	Title     string
	Content   string
	Summary   string
	Alias     string
	Tags      []string
	Draft     bool
	Listed    bool
	AuthorID  uuid.UUID
	CreatedAt *time.Time
}

// UpdateFeedRequest captures mutable fields for an existing feed. Nil
// pointers leave the stored value untouched; a nil Tags slice keeps the tag
// set, an empty non-nil slice clears it.
type UpdateFeedRequest struct {
	ID        uuid.UUID
	Title     *string
	Content   *string
	Summary   *string
	Alias     *string
	Tags      []string
	Draft     *bool
	Listed    *bool
	CreatedAt *time.Time
}

// DeleteFeedRequest captures the information required to remove a feed.
type DeleteFeedRequest struct {
	ID         uuid.UUID
	HardDelete bool
}

// ListFeedsRequest filters and pages the feed listing. The zero value lists
// every non-deleted published feed, newest first.
type ListFeedsRequest struct {
	IncludeDrafts   bool
	IncludeUnlisted bool
	Tag             string
	AuthorID        uuid.UUID
	Limit           int
	Offset          int
}
