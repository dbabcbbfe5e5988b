package feedback

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemoryRepository stores feedback in an in-process map, ideal for local development or tests.
type InMemoryRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]Feedback
}

// NewInMemoryRepository constructs an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{data: make(map[uuid.UUID]Feedback)}
}

// Save writes the record, replacing any existing record with the same ID.
func (r *InMemoryRepository) Save(_ context.Context, fb Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[fb.ID] = fb
	return nil
}

// GetByInterviewAndUser returns the first matching record, or (nil, nil) when absent.
func (r *InMemoryRepository) GetByInterviewAndUser(_ context.Context, interviewID uuid.UUID, userID string) (*Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, fb := range r.data {
		if fb.InterviewID == interviewID && fb.UserID == userID {
			found := fb
			return &found, nil
		}
	}
	return nil, nil
}

// Len reports the number of stored records. Test helper.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
