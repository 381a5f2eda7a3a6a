package comments

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryCommentRepository is an in-memory CommentRepository for tests.
type MemoryCommentRepository struct {
	mu       sync.RWMutex
	comments map[uuid.UUID]*Comment
}

func NewMemoryCommentRepository() *MemoryCommentRepository {
	return &MemoryCommentRepository{comments: map[uuid.UUID]*Comment{}}
}

func (r *MemoryCommentRepository) Create(ctx context.Context, record *Comment) (*Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *record
	r.comments[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *MemoryCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.comments[id]
	if !ok || record.DeletedAt != nil {
		return nil, &NotFoundError{Resource: "comment", Key: id.String()}
	}
	clone := *record
	return &clone, nil
}

func (r *MemoryCommentRepository) ListByFeed(ctx context.Context, feedID uuid.UUID) ([]*Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Comment, 0)
	for _, record := range r.comments {
		if record.FeedID == feedID && record.DeletedAt == nil {
			clone := *record
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *MemoryCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.comments[id]
	if !ok || record.DeletedAt != nil {
		return &NotFoundError{Resource: "comment", Key: id.String()}
	}
	now := time.Now()
	record.DeletedAt = &now
	return nil
}
