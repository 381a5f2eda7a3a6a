package feeds

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	blogfeeds "github.com/goliatone/go-blog/feeds"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/activity"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Service exposes feed management use cases. The public contract lives in the
// feeds package; this interface restates it for internal consumers.
type Service = blogfeeds.Service

// FeedRepository abstracts storage operations for feed entities.
type FeedRepository interface {
	Create(ctx context.Context, record *Feed) (*Feed, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Feed, error)
	GetByAlias(ctx context.Context, alias string) (*Feed, error)
	List(ctx context.Context, filter ListFeedsRequest) ([]*Feed, error)
	Update(ctx context.Context, record *Feed) (*Feed, error)
	Delete(ctx context.Context, id uuid.UUID, hard bool) error
	SetTags(ctx context.Context, feedID uuid.UUID, tags []*Tag) error
	TagCounts(ctx context.Context) ([]*TagCount, error)
}

// TagRepository resolves tags by name, creating missing rows.
type TagRepository interface {
	EnsureByName(ctx context.Context, name string) (*Tag, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
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

// WithSummaryBudget overrides the rune budget applied to derived summaries.
func WithSummaryBudget(budget int) ServiceOption {
	return func(s *service) {
		if budget > 0 {
			s.summaryBudget = budget
		}
	}
}

// WithAutoSummary toggles summary derivation for blank summaries.
func WithAutoSummary(enabled bool) ServiceOption {
	return func(s *service) {
		s.autoSummary = enabled
	}
}

// WithLogger injects the logger used by the service. Defaults to no-op.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithActivityEmitter overrides the activity emitter used for audit events.
func WithActivityEmitter(emitter *activity.Emitter) ServiceOption {
	return func(s *service) {
		if emitter != nil {
			s.activity = emitter
		}
	}
}

type service struct {
	feeds         FeedRepository
	tags          TagRepository
	now           func() time.Time
	id            IDGenerator
	summaryBudget int
	autoSummary   bool
	logger        interfaces.Logger
	activity      *activity.Emitter
}

// NewService constructs a feed service over the supplied repositories.
func NewService(feedRepo FeedRepository, tagRepo TagRepository, opts ...ServiceOption) Service {
	s := &service{
		feeds:         feedRepo,
		tags:          tagRepo,
		now:           time.Now,
		id:            uuid.New,
		summaryBudget: DefaultSummaryBudget,
		autoSummary:   true,
		logger:        logging.NoOp(),
		activity:      activity.NewEmitter(nil, activity.Config{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateFeedRequest) (*Feed, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrContentRequired
	}
	if req.AuthorID == uuid.Nil {
		return nil, ErrAuthorRequired
	}

	alias, err := s.resolveAlias(ctx, req.Alias, uuid.Nil)
	if err != nil {
		return nil, err
	}

	summary := strings.TrimSpace(req.Summary)
	if summary == "" && s.autoSummary {
		summary = blogfeeds.Summarize(req.Content, s.summaryBudget)
	}

	now := s.now()
	createdAt := now
	if req.CreatedAt != nil && !req.CreatedAt.IsZero() {
		createdAt = *req.CreatedAt
	}

	record := &Feed{
		ID:        s.id(),
		Title:     title,
		Content:   req.Content,
		Summary:   summary,
		Alias:     alias,
		Draft:     req.Draft,
		Listed:    req.Listed,
		AuthorID:  req.AuthorID,
		CreatedAt: createdAt,
		UpdatedAt: now,
	}

	created, err := s.feeds.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	if len(req.Tags) > 0 {
		tags, err := s.resolveTags(ctx, req.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.feeds.SetTags(ctx, created.ID, tags); err != nil {
			return nil, err
		}
		created.Tags = tags
	}

	s.logger.Info("feed.created", "feed_id", created.ID.String(), "draft", created.Draft)
	s.emitActivity(ctx, created.AuthorID, "create", created)
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateFeedRequest) (*Feed, error) {
	if req.ID == uuid.Nil {
		return nil, ErrFeedIDRequired
	}
	record, err := s.feeds.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		record.Title = title
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, ErrContentRequired
		}
		record.Content = *req.Content
	}
	if req.Alias != nil {
		alias, err := s.resolveAlias(ctx, *req.Alias, record.ID)
		if err != nil {
			return nil, err
		}
		record.Alias = alias
	}
	if req.Summary != nil {
		record.Summary = strings.TrimSpace(*req.Summary)
	}
	if record.Summary == "" && s.autoSummary {
		record.Summary = blogfeeds.Summarize(record.Content, s.summaryBudget)
	}
	if req.Draft != nil {
		record.Draft = *req.Draft
	}
	if req.Listed != nil {
		record.Listed = *req.Listed
	}
	if req.CreatedAt != nil && !req.CreatedAt.IsZero() {
		record.CreatedAt = *req.CreatedAt
	}
	record.UpdatedAt = s.now()

	updated, err := s.feeds.Update(ctx, record)
	if err != nil {
		return nil, err
	}

	if req.Tags != nil {
		tags, err := s.resolveTags(ctx, req.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.feeds.SetTags(ctx, updated.ID, tags); err != nil {
			return nil, err
		}
		updated.Tags = tags
	} else {
		updated.Tags = record.Tags
	}

	s.logger.Info("feed.updated", "feed_id", updated.ID.String(), "draft", updated.Draft)
	s.emitActivity(ctx, updated.AuthorID, "update", updated)
	return updated, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Feed, error) {
	if id == uuid.Nil {
		return nil, ErrFeedIDRequired
	}
	return s.feeds.GetByID(ctx, id)
}

func (s *service) GetByAlias(ctx context.Context, alias string) (*Feed, error) {
	trimmed := strings.TrimSpace(alias)
	if trimmed == "" {
		return nil, &NotFoundError{Resource: "feed"}
	}
	return s.feeds.GetByAlias(ctx, trimmed)
}

func (s *service) Resolve(ctx context.Context, ref string) (*Feed, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return nil, &NotFoundError{Resource: "feed"}
	}
	if id, err := uuid.Parse(trimmed); err == nil {
		record, err := s.feeds.GetByID(ctx, id)
		if err == nil {
			return record, nil
		}
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return s.feeds.GetByAlias(ctx, trimmed)
}

func (s *service) List(ctx context.Context, req ListFeedsRequest) ([]*Feed, error) {
	if req.Limit < 0 {
		req.Limit = 0
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	req.Tag = strings.TrimSpace(req.Tag)
	return s.feeds.List(ctx, req)
}

func (s *service) Delete(ctx context.Context, req DeleteFeedRequest) error {
	if req.ID == uuid.Nil {
		return ErrFeedIDRequired
	}
	record, err := s.feeds.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if err := s.feeds.Delete(ctx, req.ID, req.HardDelete); err != nil {
		return err
	}
	s.logger.Info("feed.deleted", "feed_id", req.ID.String(), "hard", req.HardDelete)
	s.emitActivity(ctx, record.AuthorID, "delete", record)
	return nil
}

func (s *service) Tags(ctx context.Context) ([]*TagCount, error) {
	return s.feeds.TagCounts(ctx)
}

// resolveAlias normalizes and uniqueness-checks an alias. An empty input
// clears the alias; selfID excludes the record being updated from the
// conflict check.
func (s *service) resolveAlias(ctx context.Context, input string, selfID uuid.UUID) (*string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, nil
	}

	normalized, err := blogfeeds.NormalizeAlias(trimmed)
	if err != nil || !blogfeeds.IsValidAlias(normalized) {
		return nil, ErrAliasInvalid
	}

	existing, err := s.feeds.GetByAlias(ctx, normalized)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return &normalized, nil
		}
		return nil, err
	}
	if existing != nil && existing.ID != selfID {
		return nil, &AliasExistsError{Alias: normalized}
	}
	return &normalized, nil
}

func (s *service) resolveTags(ctx context.Context, names []string) ([]*Tag, error) {
	cleaned := []string{}
	seen := map[string]struct{}{}
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		cleaned = append(cleaned, trimmed)
	}

	tags := make([]*Tag, 0, len(cleaned))
	for _, name := range cleaned {
		tag, err := s.tags.EnsureByName(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (s *service) emitActivity(ctx context.Context, actor uuid.UUID, verb string, record *Feed) {
	if s.activity == nil || !s.activity.Enabled() || record == nil {
		return
	}
	meta := map[string]any{"title": record.Title}
	if record.Alias != nil {
		meta["alias"] = *record.Alias
	}
	event := activity.Event{
		Verb:       verb,
		ActorID:    actor.String(),
		ObjectType: "feed",
		ObjectID:   record.ID.String(),
		Metadata:   meta,
	}
	_ = s.activity.Emit(ctx, event)
}
