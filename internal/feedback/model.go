package feedback

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput is returned when a required generation parameter is missing.
var ErrInvalidInput = errors.New("interview id, user id and transcript are required")

// Categories are the five fixed axes every interview is scored on.
var Categories = []string{
	"Communication Skills",
	"Technical Knowledge",
	"Problem Solving",
	"Cultural & Role Fit",
	"Confidence & Clarity",
}

// Message is one turn of an interview transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CategoryScore is one scored axis of the assessment.
type CategoryScore struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// Feedback is a persisted AI assessment of one interview. Scores are only
// ever written by the generation pipeline, never supplied by users.
type Feedback struct {
	ID                  uuid.UUID       `json:"id"`
	InterviewID         uuid.UUID       `json:"interviewId"`
	UserID              string          `json:"userId"`
	TotalScore          int             `json:"totalScore"`
	CategoryScores      []CategoryScore `json:"categoryScores"`
	Strengths           []string        `json:"strengths"`
	AreasForImprovement []string        `json:"areasForImprovement"`
	FinalAssessment     string          `json:"finalAssessment"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// Repository defines persistence operations for Feedback.
type Repository interface {
	// Save writes the feedback record, replacing any existing record with the
	// same ID.
	Save(ctx context.Context, fb Feedback) error
	// GetByInterviewAndUser returns the first feedback record for the pair,
	// or (nil, nil) when absent.
	GetByInterviewAndUser(ctx context.Context, interviewID uuid.UUID, userID string) (*Feedback, error)
}
