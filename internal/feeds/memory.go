package feeds

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/identity"
)

// MemoryFeedRepository is an in-memory implementation for scaffolding and tests.
type MemoryFeedRepository struct {
	mu         sync.RWMutex
	feeds      map[uuid.UUID]*Feed
	aliasIndex map[string]uuid.UUID
	feedTags   map[uuid.UUID][]*Tag
}

// NewMemoryFeedRepository creates an empty in-memory feed repository.
func NewMemoryFeedRepository() *MemoryFeedRepository {
	return &MemoryFeedRepository{
		feeds:      make(map[uuid.UUID]*Feed),
		aliasIndex: make(map[string]uuid.UUID),
		feedTags:   make(map[uuid.UUID][]*Tag),
	}
}

// Create inserts the supplied feed.
func (m *MemoryFeedRepository) Create(_ context.Context, record *Feed) (*Feed, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneFeed(record)
	m.feeds[copied.ID] = copied
	if copied.Alias != nil {
		m.aliasIndex[*copied.Alias] = copied.ID
	}
	return cloneFeed(copied), nil
}

// GetByID retrieves a feed by identifier.
func (m *MemoryFeedRepository) GetByID(_ context.Context, id uuid.UUID) (*Feed, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.feeds[id]
	if !ok || rec.DeletedAt != nil {
		return nil, &NotFoundError{Resource: "feed", Key: id.String()}
	}
	return m.withTags(cloneFeed(rec)), nil
}

// GetByAlias retrieves a feed by alias, returning NotFoundError when absent.
func (m *MemoryFeedRepository) GetByAlias(_ context.Context, alias string) (*Feed, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.aliasIndex[alias]
	if !ok {
		return nil, &NotFoundError{Resource: "feed", Key: alias}
	}
	rec := m.feeds[id]
	if rec == nil || rec.DeletedAt != nil {
		return nil, &NotFoundError{Resource: "feed", Key: alias}
	}
	return m.withTags(cloneFeed(rec)), nil
}

// List returns feeds matching the filter, newest first.
func (m *MemoryFeedRepository) List(_ context.Context, filter ListFeedsRequest) ([]*Feed, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Feed, 0, len(m.feeds))
	for _, rec := range m.feeds {
		if rec.DeletedAt != nil {
			continue
		}
		if rec.Draft && !filter.IncludeDrafts {
			continue
		}
		if !rec.Listed && !filter.IncludeUnlisted {
			continue
		}
		if filter.AuthorID != uuid.Nil && rec.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Tag != "" && !m.hasTag(rec.ID, filter.Tag) {
			continue
		}
		out = append(out, m.withTags(cloneFeed(rec)))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*Feed{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Update replaces the stored feed.
func (m *MemoryFeedRepository) Update(_ context.Context, record *Feed) (*Feed, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.feeds[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "feed", Key: record.ID.String()}
	}
	if existing.Alias != nil {
		delete(m.aliasIndex, *existing.Alias)
	}

	copied := cloneFeed(record)
	m.feeds[copied.ID] = copied
	if copied.Alias != nil {
		m.aliasIndex[*copied.Alias] = copied.ID
	}
	return cloneFeed(copied), nil
}

// Delete removes the feed, soft by default.
func (m *MemoryFeedRepository) Delete(_ context.Context, id uuid.UUID, hard bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.feeds[id]
	if !ok {
		return &NotFoundError{Resource: "feed", Key: id.String()}
	}
	if rec.Alias != nil {
		delete(m.aliasIndex, *rec.Alias)
	}
	if hard {
		delete(m.feeds, id)
		delete(m.feedTags, id)
		return nil
	}
	now := time.Now()
	rec.DeletedAt = &now
	return nil
}

// SetTags replaces the tag set attached to a feed.
func (m *MemoryFeedRepository) SetTags(_ context.Context, feedID uuid.UUID, tags []*Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.feeds[feedID]; !ok {
		return &NotFoundError{Resource: "feed", Key: feedID.String()}
	}
	copied := make([]*Tag, len(tags))
	for i, tag := range tags {
		c := *tag
		copied[i] = &c
	}
	m.feedTags[feedID] = copied
	return nil
}

// TagCounts aggregates tag usage across visible feeds.
func (m *MemoryFeedRepository) TagCounts(_ context.Context) ([]*TagCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := map[string]int{}
	for id, rec := range m.feeds {
		if rec.DeletedAt != nil || rec.Draft || !rec.Listed {
			continue
		}
		for _, tag := range m.feedTags[id] {
			counts[tag.Name]++
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*TagCount, 0, len(names))
	for _, name := range names {
		out = append(out, &TagCount{Name: name, Count: counts[name]})
	}
	return out, nil
}

func (m *MemoryFeedRepository) hasTag(feedID uuid.UUID, name string) bool {
	for _, tag := range m.feedTags[feedID] {
		if strings.EqualFold(tag.Name, name) {
			return true
		}
	}
	return false
}

func (m *MemoryFeedRepository) withTags(rec *Feed) *Feed {
	if rec == nil {
		return nil
	}
	tags := m.feedTags[rec.ID]
	if len(tags) > 0 {
		copied := make([]*Tag, len(tags))
		for i, tag := range tags {
			c := *tag
			copied[i] = &c
		}
		rec.Tags = copied
	}
	return rec
}

func cloneFeed(src *Feed) *Feed {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Alias != nil {
		alias := *src.Alias
		copied.Alias = &alias
	}
	if src.DeletedAt != nil {
		deleted := *src.DeletedAt
		copied.DeletedAt = &deleted
	}
	if len(src.Tags) > 0 {
		copied.Tags = make([]*Tag, len(src.Tags))
		for i, tag := range src.Tags {
			c := *tag
			copied.Tags[i] = &c
		}
	}
	return &copied
}

// MemoryTagRepository is an in-memory tag store for scaffolding and tests.
type MemoryTagRepository struct {
	mu   sync.Mutex
	tags map[string]*Tag
}

// NewMemoryTagRepository creates an empty in-memory tag repository.
func NewMemoryTagRepository() *MemoryTagRepository {
	return &MemoryTagRepository{tags: make(map[string]*Tag)}
}

// EnsureByName returns the tag with the given name, creating it when absent.
// IDs are deterministic so repeated runs converge on stable identifiers.
func (m *MemoryTagRepository) EnsureByName(_ context.Context, name string) (*Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(name))
	if existing, ok := m.tags[key]; ok {
		c := *existing
		return &c, nil
	}
	tag := &Tag{
		ID:   identity.TagUUID(name),
		Name: strings.TrimSpace(name),
	}
	m.tags[key] = tag
	c := *tag
	return &c, nil
}
