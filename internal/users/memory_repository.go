package users

import (
	"context"
	"sync"
)

// InMemoryRepository stores users in an in-process map, ideal for local development or tests.
type InMemoryRepository struct {
	mu   sync.RWMutex
	data map[string]User
}

// NewInMemoryRepository constructs an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{data: make(map[string]User)}
}

// Create stores the user unless the UID is already taken.
func (r *InMemoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[user.ID]; ok {
		return ErrAlreadyExists
	}
	r.data[user.ID] = user
	return nil
}

// Get returns the user for the given UID, or (nil, nil) when absent.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}
