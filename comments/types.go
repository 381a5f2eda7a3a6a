package comments

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Comment is reader feedback attached to a feed. Threading is one level
// deep: a comment either starts a thread or replies to a root.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:c"`

	ID       uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	FeedID   uuid.UUID  `bun:"feed_id,notnull,type:uuid" json:"feedId"`
	ParentID *uuid.UUID `bun:"parent_id,nullzero,type:uuid" json:"parentId,omitempty"`
	Author   string     `bun:"author,notnull" json:"author"`
	// Email is kept for moderation and notification; it never appears in
	// public payloads.
	Email     string     `bun:"email" json:"-"`
	SiteURL   string     `bun:"site_url" json:"siteUrl,omitempty"`
	Content   string     `bun:"content,notnull" json:"content"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero" json:"-"`

	Replies []*Comment `bun:"-" json:"replies,omitempty"`
}
