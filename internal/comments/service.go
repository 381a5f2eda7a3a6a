package comments

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	blogcomments "github.com/goliatone/go-blog/comments"
	"github.com/goliatone/go-blog/feeds"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Service exposes comment use cases. The public contract lives in the
// comments package; this interface restates it for internal consumers.
type Service = blogcomments.Service

// CommentRepository abstracts storage operations for comment entities.
type CommentRepository interface {
	Create(ctx context.Context, record *Comment) (*Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListByFeed(ctx context.Context, feedID uuid.UUID) ([]*Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FeedResolver is the slice of the feed service comments need to check that
// the target accepts comments.
type FeedResolver interface {
	Get(ctx context.Context, id uuid.UUID) (*feeds.Feed, error)
}

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo   CommentRepository
	feeds  FeedResolver
	now    func() time.Time
	id     IDGenerator
	logger interfaces.Logger
}

// NewService constructs the comment service.
func NewService(repo CommentRepository, feedResolver FeedResolver, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		feeds:  feedResolver,
		now:    time.Now,
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateCommentRequest) (*Comment, error) {
	if req.FeedID == uuid.Nil {
		return nil, ErrFeedRequired
	}
	author := strings.TrimSpace(req.Author)
	if author == "" {
		return nil, ErrAuthorRequired
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrContentRequired
	}

	feed, err := s.feeds.Get(ctx, req.FeedID)
	if err != nil {
		return nil, err
	}
	if !feed.Visible() {
		return nil, ErrFeedNotVisible
	}

	if req.ParentID != nil {
		parent, err := s.repo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.FeedID != req.FeedID {
			return nil, ErrParentMismatch
		}
		if parent.ParentID != nil {
			return nil, ErrNestedReply
		}
	}

	record := &Comment{
		ID:        s.id(),
		FeedID:    req.FeedID,
		ParentID:  req.ParentID,
		Author:    author,
		Email:     strings.TrimSpace(req.Email),
		SiteURL:   strings.TrimSpace(req.SiteURL),
		Content:   req.Content,
		CreatedAt: s.now(),
	}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment.created", "comment_id", created.ID.String(), "feed_id", created.FeedID.String())
	return created, nil
}

func (s *service) ListByFeed(ctx context.Context, feedID uuid.UUID) ([]*Comment, error) {
	if feedID == uuid.Nil {
		return nil, ErrFeedRequired
	}
	flat, err := s.repo.ListByFeed(ctx, feedID)
	if err != nil {
		return nil, err
	}
	return threadComments(flat), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrCommentIDMissing
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("comment.deleted", "comment_id", id.String())
	return nil
}

// threadComments arranges a flat comment list into root threads: roots
// newest first, replies oldest first under their root. Replies whose root
// was removed are dropped.
func threadComments(flat []*Comment) []*Comment {
	roots := make([]*Comment, 0, len(flat))
	byID := make(map[uuid.UUID]*Comment, len(flat))

	for _, comment := range flat {
		clone := *comment
		clone.Replies = nil
		byID[clone.ID] = &clone
		if clone.ParentID == nil {
			roots = append(roots, &clone)
		}
	}
	for _, comment := range flat {
		if comment.ParentID == nil {
			continue
		}
		root, ok := byID[*comment.ParentID]
		if !ok {
			continue
		}
		root.Replies = append(root.Replies, byID[comment.ID])
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})
	for _, root := range roots {
		sort.SliceStable(root.Replies, func(i, j int) bool {
			return root.Replies[i].CreatedAt.Before(root.Replies[j].CreatedAt)
		})
	}
	return roots
}
