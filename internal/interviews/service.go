package interviews

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes interview reads with the application's absence semantics.
type Service struct {
	repo Repository
}

// NewService wires a Service with the provided repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the interview for the given id string, or (nil, nil) when the
// id is empty, unparseable, or unknown. Absence is not an error.
func (s *Service) Get(ctx context.Context, id string) (*Interview, error) {
	if id == "" {
		return nil, nil
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	return s.repo.Get(ctx, parsed)
}

// ListByUser returns the user's interviews, newest first. An empty userID
// yields an empty list without querying.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Interview, error) {
	if userID == "" {
		return []Interview{}, nil
	}
	return s.repo.ListByUser(ctx, userID)
}

// ListLatest returns the public feed of finalized interviews, excluding the
// requesting user's own. A non-positive limit falls back to the default.
func (s *Service) ListLatest(ctx context.Context, excludeUserID string, limit int) ([]Interview, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	return s.repo.ListLatest(ctx, excludeUserID, limit)
}
