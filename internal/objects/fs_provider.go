package objects

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// FSProvider stores blobs as files under a root directory and serves them
// from a public base URL. Keys are content hashes so names are already safe.
type FSProvider struct {
	root    string
	baseURL string
}

var _ interfaces.ObjectProvider = (*FSProvider)(nil)

func NewFSProvider(root, baseURL string) (*FSProvider, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("object store root: %w", err)
	}
	return &FSProvider{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (p *FSProvider) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	if key == "" {
		return ErrKeyRequired
	}
	target := filepath.Join(p.root, key)
	if _, err := os.Stat(target); err == nil {
		// immutable: the key encodes the content, so an existing file
		// already holds these bytes
		return nil
	}

	tmp, err := os.CreateTemp(p.root, ".upload-*")
	if err != nil {
		return fmt.Errorf("object store temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return fmt.Errorf("object store write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("object store close: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("object store publish: %w", err)
	}
	return nil
}

func (p *FSProvider) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(filepath.Join(p.root, key))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("object store stat: %w", err)
}

func (p *FSProvider) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(p.root, key))
	if os.IsNotExist(err) {
		return nil, &NotFoundError{Resource: "object", Key: key}
	}
	if err != nil {
		return nil, fmt.Errorf("object store open: %w", err)
	}
	return file, nil
}

func (p *FSProvider) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(p.root, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("object store delete: %w", err)
	}
	return nil
}

func (p *FSProvider) PublicURL(key string) string {
	return p.baseURL + "/" + key
}
