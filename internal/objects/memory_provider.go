package objects

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// MemoryProvider keeps blobs in a map. Test use only.
type MemoryProvider struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	baseURL string
}

var _ interfaces.ObjectProvider = (*MemoryProvider)(nil)

func NewMemoryProvider(baseURL string) *MemoryProvider {
	return &MemoryProvider{
		blobs:   map[string][]byte{},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (p *MemoryProvider) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	if key == "" {
		return ErrKeyRequired
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.blobs[key]; ok {
		return nil
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	p.blobs[key] = data
	return nil
}

func (p *MemoryProvider) Exists(ctx context.Context, key string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.blobs[key]
	return ok, nil
}

func (p *MemoryProvider) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	data, ok := p.blobs[key]
	if !ok {
		return nil, &NotFoundError{Resource: "object", Key: key}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (p *MemoryProvider) Delete(ctx context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.blobs, key)
	return nil
}

func (p *MemoryProvider) PublicURL(key string) string {
	return p.baseURL + "/" + key
}
