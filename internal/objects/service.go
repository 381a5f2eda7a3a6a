package objects

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	blogobjects "github.com/goliatone/go-blog/objects"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Service exposes content-addressed storage use cases. The public contract
// lives in the objects package; this interface restates it for internal
// consumers.
type Service = blogobjects.Service

// ObjectRepository abstracts the metadata rows behind stored blobs.
type ObjectRepository interface {
	Create(ctx context.Context, record *StoredObject) (*StoredObject, error)
	GetByKey(ctx context.Context, key string) (*StoredObject, error)
	List(ctx context.Context) ([]*StoredObject, error)
}

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPresigner installs the signer used for SignedURL. Providers that
// implement interfaces.ObjectPresigner are picked up automatically.
func WithPresigner(presigner interfaces.ObjectPresigner) ServiceOption {
	return func(s *service) {
		if presigner != nil {
			s.presigner = presigner
		}
	}
}

type service struct {
	provider  interfaces.ObjectProvider
	presigner interfaces.ObjectPresigner
	repo      ObjectRepository
	now       func() time.Time
	logger    interfaces.Logger
}

// NewService constructs the object service over a blob provider and a
// metadata repository.
func NewService(provider interfaces.ObjectProvider, repo ObjectRepository, opts ...ServiceOption) Service {
	s := &service{
		provider: provider,
		repo:     repo,
		now:      time.Now,
		logger:   logging.NoOp(),
	}
	if presigner, ok := provider.(interfaces.ObjectPresigner); ok {
		s.presigner = presigner
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload hashes the payload, derives the key, and stores blob + metadata.
// Re-uploading identical bytes is a no-op returning the existing object.
func (s *service) Upload(ctx context.Context, req UploadRequest) (*StoredObject, error) {
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyObject
	}

	key := KeyFor(data, req.Filename)
	existing, err := s.repo.GetByKey(ctx, key)
	if err == nil {
		existing.URL = s.provider.PublicURL(key)
		return existing, nil
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	if err := s.provider.Put(ctx, key, req.ContentType, bytes.NewReader(data)); err != nil {
		return nil, err
	}

	record := &StoredObject{
		ID:          identity.ObjectUUID(key),
		Key:         key,
		Hash:        key[:40],
		Size:        int64(len(data)),
		ContentType: req.ContentType,
		CreatedAt:   s.now(),
	}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	created.URL = s.provider.PublicURL(key)

	s.logger.Info("object.stored", "key", key, "size", created.Size)
	return created, nil
}

func (s *service) Stat(ctx context.Context, key string) (*StoredObject, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	record, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	record.URL = s.provider.PublicURL(key)
	return record, nil
}

func (s *service) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	return s.provider.Get(ctx, key)
}

func (s *service) PublicURL(key string) string {
	return s.provider.PublicURL(key)
}

func (s *service) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", ErrKeyRequired
	}
	if s.presigner == nil {
		return "", errors.New("objects: provider cannot presign urls")
	}
	if _, err := s.repo.GetByKey(ctx, key); err != nil {
		return "", err
	}
	return s.presigner.SignedURL(key, ttl)
}

func (s *service) List(ctx context.Context) ([]*StoredObject, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		record.URL = s.provider.PublicURL(record.Key)
	}
	return records, nil
}
