package users

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewUserRepository(db *bun.DB) repository.Repository[*User] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			u.ID = id
		},
		GetIdentifier: func() string {
			return "username"
		},
		GetIdentifierValue: func(u *User) string {
			return u.Username
		},
	})
}

type BunUserRepository struct {
	db   *bun.DB
	repo repository.Repository[*User]
}

func NewBunUserRepository(db *bun.DB) *BunUserRepository {
	return NewBunUserRepositoryWithCache(db, nil, nil)
}

func NewBunUserRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunUserRepository {
	base := NewUserRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunUserRepository{db: db, repo: base}
}

func (r *BunUserRepository) Create(ctx context.Context, record *User) (*User, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *BunUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "user", id.String())
	}
	if record.DeletedAt != nil {
		return nil, &NotFoundError{Resource: "user", Key: id.String()}
	}
	return record, nil
}

func (r *BunUserRepository) GetByGithubID(ctx context.Context, githubID int64) (*User, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.github_id = ?", githubID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.deleted_at IS NULL")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "user", fmt.Sprintf("github:%d", githubID))
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "user", Key: fmt.Sprintf("github:%d", githubID)}
	}
	return records[0], nil
}

func (r *BunUserRepository) Update(ctx context.Context, record *User) (*User, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"username",
			"avatar_url",
			"role",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "user", record.ID.String())
	}
	return updated, nil
}

func (r *BunUserRepository) Count(ctx context.Context) (int, error) {
	if r.db == nil {
		return 0, fmt.Errorf("user repository: database not configured")
	}
	count, err := r.db.NewSelect().
		Model((*User)(nil)).
		Where("?TableAlias.deleted_at IS NULL").
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
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
