package interviews

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultLatestLimit caps the public "latest interviews" feed.
const DefaultLatestLimit = 20

// Interview is a mock-interview record. Interviews are created by the
// interview flow outside this service; this package only reads them.
type Interview struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	Type      string    `json:"type"`
	TechStack []string  `json:"techstack"`
	Questions []string  `json:"questions"`
	Finalized bool      `json:"finalized"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository defines read operations over interview records.
type Repository interface {
	// Get returns the interview for the given id, or (nil, nil) when absent.
	Get(ctx context.Context, id uuid.UUID) (*Interview, error)
	// ListByUser returns all interviews owned by userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]Interview, error)
	// ListLatest returns up to limit finalized interviews not owned by
	// excludeUserID, newest first.
	ListLatest(ctx context.Context, excludeUserID string, limit int) ([]Interview, error)
}
