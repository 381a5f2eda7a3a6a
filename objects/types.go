package objects

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// StoredObject is the metadata row for a content-addressed blob. The blob
// itself lives behind an ObjectProvider; the key is the SHA-1 hex of the
// bytes plus the original file extension, so identical uploads share a row.
type StoredObject struct {
	bun.BaseModel `bun:"table:stored_objects,alias:o"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Key         string    `bun:"key,notnull,unique" json:"key"`
	Hash        string    `bun:"hash,notnull" json:"hash"`
	Size        int64     `bun:"size,notnull" json:"size"`
	ContentType string    `bun:"content_type" json:"contentType"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	// URL is the public location, derived from the provider at read time.
	URL string `bun:"-" json:"url"`
}
