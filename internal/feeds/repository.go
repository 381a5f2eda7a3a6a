package feeds

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewFeedRepository(db *bun.DB) repository.Repository[*Feed] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Feed]{
		NewRecord: func() *Feed { return &Feed{} },
		GetID: func(f *Feed) uuid.UUID {
			return f.ID
		},
		SetID: func(f *Feed, id uuid.UUID) {
			f.ID = id
		},
		GetIdentifier: func() string {
			return "alias"
		},
		GetIdentifierValue: func(f *Feed) string {
			if f.Alias == nil {
				return ""
			}
			return *f.Alias
		},
	})
}

func NewTagRepository(db *bun.DB) repository.Repository[*Tag] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Tag]{
		NewRecord: func() *Tag { return &Tag{} },
		GetID: func(t *Tag) uuid.UUID {
			return t.ID
		},
		SetID: func(t *Tag, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "name"
		},
		GetIdentifierValue: func(t *Tag) string {
			return t.Name
		},
	})
}
