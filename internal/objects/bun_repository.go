package objects

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

func NewStoredObjectRepository(db *bun.DB) repository.Repository[*StoredObject] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*StoredObject]{
		NewRecord: func() *StoredObject { return &StoredObject{} },
		GetID: func(o *StoredObject) uuid.UUID {
			return o.ID
		},
		SetID: func(o *StoredObject, id uuid.UUID) {
			o.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(o *StoredObject) string {
			return o.Key
		},
	})
}

type BunObjectRepository struct {
	db   *bun.DB
	repo repository.Repository[*StoredObject]
}

func NewBunObjectRepository(db *bun.DB) *BunObjectRepository {
	return NewBunObjectRepositoryWithCache(db, nil, nil)
}

func NewBunObjectRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunObjectRepository {
	base := NewStoredObjectRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunObjectRepository{db: db, repo: base}
}

func (r *BunObjectRepository) Create(ctx context.Context, record *StoredObject) (*StoredObject, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("create stored object: %w", err)
	}
	return created, nil
}

func (r *BunObjectRepository) GetByKey(ctx context.Context, key string) (*StoredObject, error) {
	record, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, &NotFoundError{Resource: "object", Key: key}
		}
		return nil, fmt.Errorf("object repository error: %w", err)
	}
	return record, nil
}

func (r *BunObjectRepository) List(ctx context.Context) ([]*StoredObject, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at DESC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("list stored objects: %w", err)
	}
	return records, nil
}
