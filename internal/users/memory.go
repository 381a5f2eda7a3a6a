package users

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory UserRepository for tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[uuid.UUID]*User{}}
}

func (r *MemoryUserRepository) Create(ctx context.Context, record *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *record
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.users[id]
	if !ok || record.DeletedAt != nil {
		return nil, &NotFoundError{Resource: "user", Key: id.String()}
	}
	clone := *record
	return &clone, nil
}

func (r *MemoryUserRepository) GetByGithubID(ctx context.Context, githubID int64) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, record := range r.users {
		if record.GithubID == githubID && record.DeletedAt == nil {
			clone := *record
			return &clone, nil
		}
	}
	return nil, &NotFoundError{Resource: "user"}
}

func (r *MemoryUserRepository) Update(ctx context.Context, record *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "user", Key: record.ID.String()}
	}
	clone := *record
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *MemoryUserRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, record := range r.users {
		if record.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}
