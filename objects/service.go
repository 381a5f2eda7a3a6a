package objects

import (
	"context"
	"io"
	"time"
)

// Service exposes content-addressed object storage.
type Service interface {
	// Upload stores the bytes under their content-addressed key. Uploading
	// identical bytes twice yields the identical key and the existing
	// object; blobs are immutable once written.
	Upload(ctx context.Context, req UploadRequest) (*StoredObject, error)
	// Stat returns the metadata for a stored key.
	Stat(ctx context.Context, key string) (*StoredObject, error)
	// Open streams a stored blob.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// PublicURL derives the unauthenticated location for a key.
	PublicURL(key string) string
	// SignedURL mints a time-limited signed URL for a key.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	// List returns every stored object's metadata, newest first.
	List(ctx context.Context) ([]*StoredObject, error)
}

// UploadRequest carries one upload. Filename supplies the key's extension;
// ContentType is stored for later serving.
type UploadRequest struct {
	Filename    string
	ContentType string
	Body        io.Reader
}
