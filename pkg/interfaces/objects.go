package interfaces

import (
	"context"
	"io"
	"time"
)

// ObjectProvider abstracts the backing blob store for content-addressed
// objects. Keys are derived from the object bytes before Put is invoked, so
// providers never decide placement; they only persist and serve.
type ObjectProvider interface {
	// Put stores the object under key. Implementations must treat an existing
	// key as success without rewriting (objects are immutable once written).
	Put(ctx context.Context, key string, contentType string, body io.Reader) error
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// PublicURL returns the stable public address for a stored key.
	PublicURL(key string) string
}

// ObjectPresigner is an optional mix-in for providers that can grant
// time-limited access to otherwise private objects.
type ObjectPresigner interface {
	SignedURL(key string, ttl time.Duration) (string, error)
}
