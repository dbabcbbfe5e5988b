package feedback

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
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

// Save upserts the feedback record by ID, so regeneration with a known
// feedback id overwrites rather than duplicates.
func (r *PostgresRepository) Save(ctx context.Context, fb Feedback) error {
	const query = `
		INSERT INTO feedback (id, interview_id, user_id, total_score, category_scores,
			strengths, areas_for_improvement, final_assessment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			interview_id = EXCLUDED.interview_id,
			user_id = EXCLUDED.user_id,
			total_score = EXCLUDED.total_score,
			category_scores = EXCLUDED.category_scores,
			strengths = EXCLUDED.strengths,
			areas_for_improvement = EXCLUDED.areas_for_improvement,
			final_assessment = EXCLUDED.final_assessment,
			created_at = EXCLUDED.created_at
	`

	scores, err := json.Marshal(fb.CategoryScores)
	if err != nil {
		return fmt.Errorf("encode category scores: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		fb.ID,
		fb.InterviewID,
		fb.UserID,
		fb.TotalScore,
		scores,
		pq.StringArray(fb.Strengths),
		pq.StringArray(fb.AreasForImprovement),
		fb.FinalAssessment,
		fb.CreatedAt,
	)
	return err
}

// GetByInterviewAndUser returns the first matching record, or (nil, nil) when absent.
func (r *PostgresRepository) GetByInterviewAndUser(ctx context.Context, interviewID uuid.UUID, userID string) (*Feedback, error) {
	const query = `
		SELECT id, interview_id, user_id, total_score, category_scores,
			strengths, areas_for_improvement, final_assessment, created_at
		FROM feedback
		WHERE interview_id = $1 AND user_id = $2
		LIMIT 1
	`

	var row feedbackRow
	if err := r.db.GetContext(ctx, &row, query, interviewID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toFeedback()
}

// feedbackRow is a database row representation of Feedback.
type feedbackRow struct {
	ID                  uuid.UUID       `db:"id"`
	InterviewID         uuid.UUID       `db:"interview_id"`
	UserID              string          `db:"user_id"`
	TotalScore          int             `db:"total_score"`
	CategoryScores      json.RawMessage `db:"category_scores"`
	Strengths           pq.StringArray  `db:"strengths"`
	AreasForImprovement pq.StringArray  `db:"areas_for_improvement"`
	FinalAssessment     string          `db:"final_assessment"`
	CreatedAt           time.Time       `db:"created_at"`
}

func (r *feedbackRow) toFeedback() (*Feedback, error) {
	var scores []CategoryScore
	if err := json.Unmarshal(r.CategoryScores, &scores); err != nil {
		return nil, fmt.Errorf("decode category scores: %w", err)
	}

	return &Feedback{
		ID:                  r.ID,
		InterviewID:         r.InterviewID,
		UserID:              r.UserID,
		TotalScore:          r.TotalScore,
		CategoryScores:      scores,
		Strengths:           []string(r.Strengths),
		AreasForImprovement: []string(r.AreasForImprovement),
		FinalAssessment:     r.FinalAssessment,
		CreatedAt:           r.CreatedAt,
	}, nil
}
