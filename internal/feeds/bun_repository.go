package feeds

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/identity"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunFeedRepository struct {
	db   *bun.DB
	repo repository.Repository[*Feed]
}

func NewBunFeedRepository(db *bun.DB) *BunFeedRepository {
	return NewBunFeedRepositoryWithCache(db, nil, nil)
}

// NewBunFeedRepositoryWithCache constructs a FeedRepository backed by bun with optional caching.
func NewBunFeedRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunFeedRepository {
	base := NewFeedRepository(db)
	return &BunFeedRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunFeedRepository) Create(ctx context.Context, record *Feed) (*Feed, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("create feed: %w", err)
	}
	return created, nil
}

func (r *BunFeedRepository) GetByID(ctx context.Context, id uuid.UUID) (*Feed, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "feed", id.String())
	}
	if record.DeletedAt != nil {
		return nil, &NotFoundError{Resource: "feed", Key: id.String()}
	}
	if err := r.loadTags(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunFeedRepository) GetByAlias(ctx context.Context, alias string) (*Feed, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.alias = ?", alias)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.deleted_at IS NULL")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "feed", alias)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "feed", Key: alias}
	}
	record := records[0]
	if err := r.loadTags(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunFeedRepository) List(ctx context.Context, filter ListFeedsRequest) ([]*Feed, error) {
	processors := []repository.SelectCriteria{
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.deleted_at IS NULL")
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at DESC")
		}),
	}
	if !filter.IncludeDrafts {
		processors = append(processors, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.draft = ?", false)
		}))
	}
	if !filter.IncludeUnlisted {
		processors = append(processors, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.listed = ?", true)
		}))
	}
	if filter.AuthorID != uuid.Nil {
		processors = append(processors, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.author_id = ?", filter.AuthorID)
		}))
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		processors = append(processors, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where(
				"EXISTS (SELECT 1 FROM feed_tags ft JOIN tags t ON t.id = ft.tag_id WHERE ft.feed_id = ?TableAlias.id AND lower(t.name) = lower(?))",
				tag,
			)
		}))
	}
	if filter.Limit > 0 {
		processors = append(processors, repository.SelectPaginate(filter.Limit, filter.Offset))
	} else if filter.Offset > 0 {
		processors = append(processors, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Offset(filter.Offset)
		}))
	}

	records, _, err := r.repo.List(ctx, processors...)
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	for _, record := range records {
		if err := r.loadTags(ctx, record); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (r *BunFeedRepository) Update(ctx context.Context, record *Feed) (*Feed, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"title",
			"content",
			"summary",
			"alias",
			"draft",
			"listed",
			"created_at",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "feed", record.ID.String())
	}
	updated.Tags = record.Tags
	return updated, nil
}

func (r *BunFeedRepository) Delete(ctx context.Context, id uuid.UUID, hardDelete bool) error {
	if r.db == nil {
		return fmt.Errorf("feed repository: database not configured")
	}

	if !hardDelete {
		result, err := r.db.NewUpdate().
			Model((*Feed)(nil)).
			Set("deleted_at = ?", time.Now().UTC()).
			Where("?TableAlias.id = ?", id).
			Where("?TableAlias.deleted_at IS NULL").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete feed: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("feed delete rows affected: %w", err)
		}
		if affected == 0 {
			return &NotFoundError{Resource: "feed", Key: id.String()}
		}
		return nil
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*FeedTag)(nil)).
			Where("?TableAlias.feed_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete feed tags: %w", err)
		}

		result, err := tx.NewDelete().
			Model((*Feed)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete feed: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("feed delete rows affected: %w", err)
		}
		if affected == 0 {
			return &NotFoundError{Resource: "feed", Key: id.String()}
		}
		return nil
	})
}

func (r *BunFeedRepository) SetTags(ctx context.Context, feedID uuid.UUID, tags []*Tag) error {
	if r.db == nil {
		return fmt.Errorf("feed repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*FeedTag)(nil)).
			Where("?TableAlias.feed_id = ?", feedID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete feed tags: %w", err)
		}

		if len(tags) == 0 {
			return nil
		}

		links := make([]*FeedTag, 0, len(tags))
		for _, tag := range tags {
			if tag == nil {
				continue
			}
			links = append(links, &FeedTag{FeedID: feedID, TagID: tag.ID})
		}
		if len(links) == 0 {
			return nil
		}

		if _, err := tx.NewInsert().Model(&links).Exec(ctx); err != nil {
			return fmt.Errorf("insert feed tags: %w", err)
		}
		return nil
	})
}

func (r *BunFeedRepository) TagCounts(ctx context.Context) ([]*TagCount, error) {
	if r.db == nil {
		return nil, fmt.Errorf("feed repository: database not configured")
	}

	var counts []*TagCount
	err := r.db.NewSelect().
		ColumnExpr("t.name AS name").
		ColumnExpr("COUNT(ft.feed_id) AS count").
		TableExpr("tags AS t").
		Join("JOIN feed_tags AS ft ON ft.tag_id = t.id").
		Join("JOIN feeds AS f ON f.id = ft.feed_id").
		Where("f.deleted_at IS NULL").
		Where("f.draft = ?", false).
		Where("f.listed = ?", true).
		GroupExpr("t.name").
		OrderExpr("t.name ASC").
		Scan(ctx, &counts)
	if err != nil {
		return nil, fmt.Errorf("tag counts: %w", err)
	}
	return counts, nil
}

func (r *BunFeedRepository) loadTags(ctx context.Context, record *Feed) error {
	if r.db == nil || record == nil {
		return nil
	}

	var tags []*Tag
	err := r.db.NewSelect().
		Model(&tags).
		Join("JOIN feed_tags AS ft ON ft.tag_id = ?TableAlias.id").
		Where("ft.feed_id = ?", record.ID).
		OrderExpr("?TableAlias.name ASC").
		Scan(ctx)
	if err != nil {
		return fmt.Errorf("load feed tags: %w", err)
	}
	record.Tags = tags
	return nil
}

type BunTagRepository struct {
	db   *bun.DB
	repo repository.Repository[*Tag]
}

func NewBunTagRepository(db *bun.DB) *BunTagRepository {
	return NewBunTagRepositoryWithCache(db, nil, nil)
}

func NewBunTagRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunTagRepository {
	base := NewTagRepository(db)
	return &BunTagRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

// EnsureByName returns the tag with the given name, creating it when missing.
// Tag identity is deterministic so repeated imports converge on one row.
func (r *BunTagRepository) EnsureByName(ctx context.Context, name string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tag repository: name is required")
	}

	existing, err := r.repo.GetByIdentifier(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return nil, fmt.Errorf("lookup tag: %w", err)
	}

	created, err := r.repo.Create(ctx, &Tag{
		ID:        identity.TagUUID(name),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return created, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}

	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
