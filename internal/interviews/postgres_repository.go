package interviews

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgresRepository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get returns the interview for the given id, or (nil, nil) when absent.
func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*Interview, error) {
	const query = `
		SELECT id, user_id, role, type, tech_stack, questions, finalized, created_at
		FROM interviews
		WHERE id = $1
	`

	var row interviewRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	interview := row.toInterview()
	return &interview, nil
}

// ListByUser returns all interviews owned by userID, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Interview, error) {
	const query = `
		SELECT id, user_id, role, type, tech_stack, questions, finalized, created_at
		FROM interviews
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var rows []interviewRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}
	return toInterviews(rows), nil
}

// ListLatest returns up to limit finalized interviews not owned by
// excludeUserID, newest first. The exclusion happens server-side so the
// result count is exact.
func (r *PostgresRepository) ListLatest(ctx context.Context, excludeUserID string, limit int) ([]Interview, error) {
	const query = `
		SELECT id, user_id, role, type, tech_stack, questions, finalized, created_at
		FROM interviews
		WHERE finalized AND user_id <> $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var rows []interviewRow
	if err := r.db.SelectContext(ctx, &rows, query, excludeUserID, limit); err != nil {
		return nil, err
	}
	return toInterviews(rows), nil
}

// interviewRow is a database row representation of Interview.
type interviewRow struct {
	ID        uuid.UUID      `db:"id"`
	UserID    string         `db:"user_id"`
	Role      string         `db:"role"`
	Type      string         `db:"type"`
	TechStack pq.StringArray `db:"tech_stack"`
	Questions pq.StringArray `db:"questions"`
	Finalized bool           `db:"finalized"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r *interviewRow) toInterview() Interview {
	return Interview{
		ID:        r.ID,
		UserID:    r.UserID,
		Role:      r.Role,
		Type:      r.Type,
		TechStack: []string(r.TechStack),
		Questions: []string(r.Questions),
		Finalized: r.Finalized,
		CreatedAt: r.CreatedAt,
	}
}

func toInterviews(rows []interviewRow) []Interview {
	out := make([]Interview, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toInterview())
	}
	return out
}
