package feeds

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Feed is the canonical record for a blog entry, draft or published.
type Feed struct {
	bun.BaseModel `bun:"table:feeds,alias:f"`

	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Title     string     `bun:"title,notnull" json:"title"`
	Content   string     `bun:"content,notnull" json:"content"`
	Summary   string     `bun:"summary" json:"summary"`
	Alias     *string    `bun:"alias,nullzero" json:"alias,omitempty"`
	Draft     bool       `bun:"draft,notnull,default:false" json:"draft"`
	Listed    bool       `bun:"listed,notnull,default:true" json:"listed"`
	AuthorID  uuid.UUID  `bun:"author_id,notnull,type:uuid" json:"author_id"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Tags []*Tag `bun:"m2m:feed_tags,join:Feed=Tag" json:"tags,omitempty"`
}

// Tag labels feeds; names are unique and shared across entries.
type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:t"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull,unique" json:"name"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// FeedTag joins feeds and tags.
type FeedTag struct {
	bun.BaseModel `bun:"table:feed_tags,alias:ft"`

	FeedID uuid.UUID `bun:"feed_id,pk,type:uuid" json:"feed_id"`
	TagID  uuid.UUID `bun:"tag_id,pk,type:uuid" json:"tag_id"`

	Feed *Feed `bun:"rel:belongs-to,join:feed_id=id" json:"feed,omitempty"`
	Tag  *Tag  `bun:"rel:belongs-to,join:tag_id=id" json:"tag,omitempty"`
}

// TagCount reports how many visible feeds carry a tag.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TagNames flattens the loaded tag relation into plain names.
func (f *Feed) TagNames() []string {
	if f == nil || len(f.Tags) == 0 {
		return nil
	}
	names := make([]string, 0, len(f.Tags))
	for _, tag := range f.Tags {
		if tag != nil {
			names = append(names, tag.Name)
		}
	}
	return names
}

// Visible reports whether the feed should appear on public surfaces.
func (f *Feed) Visible() bool {
	return f != nil && !f.Draft && f.DeletedAt == nil
}
