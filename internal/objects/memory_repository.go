package objects

import (
	"context"
	"sort"
	"sync"
)

// MemoryObjectRepository is an in-memory ObjectRepository for tests.
type MemoryObjectRepository struct {
	mu      sync.RWMutex
	objects map[string]*StoredObject
}

func NewMemoryObjectRepository() *MemoryObjectRepository {
	return &MemoryObjectRepository{objects: map[string]*StoredObject{}}
}

func (r *MemoryObjectRepository) Create(ctx context.Context, record *StoredObject) (*StoredObject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *record
	r.objects[clone.Key] = &clone
	out := clone
	return &out, nil
}

func (r *MemoryObjectRepository) GetByKey(ctx context.Context, key string) (*StoredObject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.objects[key]
	if !ok {
		return nil, &NotFoundError{Resource: "object", Key: key}
	}
	clone := *record
	return &clone, nil
}

func (r *MemoryObjectRepository) List(ctx context.Context) ([]*StoredObject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*StoredObject, 0, len(r.objects))
	for _, record := range r.objects {
		clone := *record
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
