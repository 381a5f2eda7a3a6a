package editor

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ScopeNew keys drafts that have no document id yet.
const ScopeNew = "new"

// ScopeFor derives the draft-cache scope for a document reference.
func ScopeFor(documentID string) string {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return ScopeNew
	}
	return documentID
}

// Draft captures the writing-page fields persisted between sessions.
type Draft struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Tags    string `json:"tags"`
	Alias   string `json:"alias"`
	Content string `json:"content"`
}

// Store persists draft fields keyed by scope. Implementations are last write
// wins; concurrent writers are not coordinated.
type Store interface {
	Get(scope, field string) (string, bool, error)
	Set(scope, field, value string) error
	Clear(scope string) error
}

const (
	fieldTitle     = "title"
	fieldSummary   = "summary"
	fieldTags      = "tags"
	fieldAlias     = "alias"
	fieldContent   = "content"
	fieldPrefilled = "_prefilled"
)

// Cache reads and writes drafts through a Store, one field per key.
type Cache struct {
	store Store
}

func NewCache(store Store) *Cache {
	return &Cache{store: store}
}

// Load assembles the draft for a scope. Missing fields come back empty.
func (c *Cache) Load(scope string) (Draft, error) {
	var draft Draft
	for field, target := range map[string]*string{
		fieldTitle:   &draft.Title,
		fieldSummary: &draft.Summary,
		fieldTags:    &draft.Tags,
		fieldAlias:   &draft.Alias,
		fieldContent: &draft.Content,
	} {
		value, ok, err := c.store.Get(scope, field)
		if err != nil {
			return Draft{}, fmt.Errorf("draft cache load %s/%s: %w", scope, field, err)
		}
		if ok {
			*target = value
		}
	}
	return draft, nil
}

// Save writes every draft field for the scope.
func (c *Cache) Save(scope string, draft Draft) error {
	for field, value := range map[string]string{
		fieldTitle:   draft.Title,
		fieldSummary: draft.Summary,
		fieldTags:    draft.Tags,
		fieldAlias:   draft.Alias,
		fieldContent: draft.Content,
	} {
		if err := c.store.Set(scope, field, value); err != nil {
			return fmt.Errorf("draft cache save %s/%s: %w", scope, field, err)
		}
	}
	return nil
}

// SetField updates a single draft field.
func (c *Cache) SetField(scope, field, value string) error {
	return c.store.Set(scope, field, value)
}

// Clear removes every key for the scope. Called after a successful publish.
func (c *Cache) Clear(scope string) error {
	return c.store.Clear(scope)
}

// Prefill seeds the scope from a server-side record, once. The first call
// stores the record's fields and marks the scope prefilled; later calls
// return the cached draft untouched, so local edits are never overwritten by
// a re-fetch. The returned draft is what the page should display.
func (c *Cache) Prefill(scope string, remote Draft) (Draft, error) {
	_, done, err := c.store.Get(scope, fieldPrefilled)
	if err != nil {
		return Draft{}, fmt.Errorf("draft cache prefill %s: %w", scope, err)
	}
	if done {
		return c.Load(scope)
	}
	if err := c.Save(scope, remote); err != nil {
		return Draft{}, err
	}
	if err := c.store.Set(scope, fieldPrefilled, "1"); err != nil {
		return Draft{}, fmt.Errorf("draft cache prefill %s: %w", scope, err)
	}
	return remote, nil
}

// MemoryStore is an in-process Store for tests and single-run tools.
type MemoryStore struct {
	mu     sync.RWMutex
	scopes map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scopes: map[string]map[string]string{}}
}

func (s *MemoryStore) Get(scope, field string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.scopes[scope]
	if !ok {
		return "", false, nil
	}
	value, ok := fields[field]
	return value, ok, nil
}

func (s *MemoryStore) Set(scope, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields, ok := s.scopes[scope]
	if !ok {
		fields = map[string]string{}
		s.scopes[scope] = fields
	}
	fields[field] = value
	return nil
}

func (s *MemoryStore) Clear(scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scopes, scope)
	return nil
}

// FileStore persists one JSON document per scope under a directory. It backs
// drafts for CLI workflows where the process restarts between edits.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("draft store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Get(scope, field string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields, err := s.read(scope)
	if err != nil {
		return "", false, err
	}
	value, ok := fields[field]
	return value, ok, nil
}

func (s *FileStore) Set(scope, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields, err := s.read(scope)
	if err != nil {
		return err
	}
	fields[field] = value
	return s.write(scope, fields)
}

func (s *FileStore) Clear(scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path(scope))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("draft store clear: %w", err)
	}
	return nil
}

func (s *FileStore) path(scope string) string {
	return filepath.Join(s.dir, url.PathEscape(scope)+".json")
}

func (s *FileStore) read(scope string) (map[string]string, error) {
	raw, err := os.ReadFile(s.path(scope))
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("draft store read: %w", err)
	}
	fields := map[string]string{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("draft store decode: %w", err)
	}
	return fields, nil
}

func (s *FileStore) write(scope string, fields map[string]string) error {
	raw, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return fmt.Errorf("draft store encode: %w", err)
	}
	if err := os.WriteFile(s.path(scope), raw, 0o644); err != nil {
		return fmt.Errorf("draft store write: %w", err)
	}
	return nil
}
