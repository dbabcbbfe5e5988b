package interviews

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// InMemoryRepository stores interviews in an in-process map, ideal for local development or tests.
type InMemoryRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]Interview
}

// NewInMemoryRepository constructs a repository seeded with optional initial interviews.
func NewInMemoryRepository(initial []Interview) *InMemoryRepository {
	data := make(map[uuid.UUID]Interview, len(initial))
	for _, interview := range initial {
		data[interview.ID] = interview
	}
	return &InMemoryRepository{data: data}
}

// Get returns the interview for the given id, or (nil, nil) when absent.
func (r *InMemoryRepository) Get(_ context.Context, id uuid.UUID) (*Interview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	interview, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &interview, nil
}

// ListByUser returns all interviews owned by userID, newest first.
func (r *InMemoryRepository) ListByUser(_ context.Context, userID string) ([]Interview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Interview, 0)
	for _, interview := range r.data {
		if interview.UserID == userID {
			out = append(out, interview)
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

// ListLatest returns up to limit finalized interviews not owned by excludeUserID, newest first.
func (r *InMemoryRepository) ListLatest(_ context.Context, excludeUserID string, limit int) ([]Interview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Interview, 0)
	for _, interview := range r.data {
		if !interview.Finalized || interview.UserID == excludeUserID {
			continue
		}
		out = append(out, interview)
	}
	sortByCreatedDesc(out)

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortByCreatedDesc(list []Interview) {
	slices.SortFunc(list, func(a, b Interview) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
