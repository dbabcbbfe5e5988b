package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"prepmate/internal/genai"
)

type modelStub struct {
	calls    int
	generate func(ctx context.Context, req genai.Request, out any) error
}

func (m *modelStub) GenerateObject(ctx context.Context, req genai.Request, out any) error {
	m.calls++
	if m.generate != nil {
		return m.generate(ctx, req, out)
	}
	return fillAssessment(out)
}

func fillAssessment(out any) error {
	raw := `{
		"totalScore": 74,
		"categoryScores": [
			{"name": "Communication Skills", "score": 80, "comment": "Clear answers."},
			{"name": "Technical Knowledge", "score": 70, "comment": "Solid fundamentals."},
			{"name": "Problem Solving", "score": 72, "comment": "Methodical."},
			{"name": "Cultural & Role Fit", "score": 75, "comment": "Collaborative."},
			{"name": "Confidence & Clarity", "score": 73, "comment": "Composed."}
		],
		"strengths": ["Communication"],
		"areasForImprovement": ["System design depth"],
		"finalAssessment": "A solid mid-level performance."
	}`
	return json.Unmarshal([]byte(raw), out)
}

func sampleTranscript() []Message {
	return []Message{
		{Role: "interviewer", Content: "Tell me about yourself."},
		{Role: "candidate", Content: "I build backend services."},
	}
}

func TestGenerateRejectsMissingInput(t *testing.T) {
	model := &modelStub{}
	repo := NewInMemoryRepository()
	gen := NewGenerator(model, repo)

	cases := []struct {
		name        string
		interviewID string
		userID      string
		transcript  []Message
	}{
		{"missing interview", "", "uid", sampleTranscript()},
		{"missing user", uuid.NewString(), "", sampleTranscript()},
		{"empty transcript", uuid.NewString(), "uid", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gen.Generate(context.Background(), tc.interviewID, tc.userID, tc.transcript, "")
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	if model.calls != 0 {
		t.Fatalf("expected no model calls, got %d", model.calls)
	}
	if repo.Len() != 0 {
		t.Fatalf("expected no writes, got %d", repo.Len())
	}
}

func TestGeneratePersistsAssessment(t *testing.T) {
	var gotPrompt string
	model := &modelStub{
		generate: func(ctx context.Context, req genai.Request, out any) error {
			gotPrompt = req.Prompt
			return fillAssessment(out)
		},
	}
	repo := NewInMemoryRepository()
	gen := NewGenerator(model, repo)

	interviewID := uuid.NewString()
	id, err := gen.Generate(context.Background(), interviewID, "uid-1", sampleTranscript(), "")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a uuid feedback id, got %q", id)
	}

	if !strings.Contains(gotPrompt, "- interviewer: Tell me about yourself.") {
		t.Fatalf("expected transcript lines in prompt, got:\n%s", gotPrompt)
	}
	if !strings.Contains(gotPrompt, "Cultural & Role Fit") {
		t.Fatalf("expected fixed categories in prompt, got:\n%s", gotPrompt)
	}

	fb, err := gen.GetByInterviewAndUser(context.Background(), interviewID, "uid-1")
	if err != nil {
		t.Fatalf("GetByInterviewAndUser returned error: %v", err)
	}
	if fb == nil {
		t.Fatal("expected persisted feedback")
	}
	if fb.TotalScore != 74 || len(fb.CategoryScores) != 5 {
		t.Fatalf("unexpected feedback %+v", fb)
	}
}

func TestGenerateOverwritesByFeedbackID(t *testing.T) {
	repo := NewInMemoryRepository()
	gen := NewGenerator(&modelStub{}, repo)

	interviewID := uuid.NewString()
	first, err := gen.Generate(context.Background(), interviewID, "uid-1", sampleTranscript(), "")
	if err != nil {
		t.Fatalf("first Generate returned error: %v", err)
	}

	second, err := gen.Generate(context.Background(), interviewID, "uid-1", sampleTranscript(), first)
	if err != nil {
		t.Fatalf("second Generate returned error: %v", err)
	}
	if second != first {
		t.Fatalf("expected overwrite at id %q, got %q", first, second)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected a single record after regeneration, got %d", repo.Len())
	}
}

func TestGenerateNoWriteOnModelFailure(t *testing.T) {
	model := &modelStub{
		generate: func(ctx context.Context, req genai.Request, out any) error {
			return errors.New("model unavailable")
		},
	}
	repo := NewInMemoryRepository()
	gen := NewGenerator(model, repo)

	_, err := gen.Generate(context.Background(), uuid.NewString(), "uid-1", sampleTranscript(), "")
	if err == nil {
		t.Fatal("expected error when the model fails")
	}
	if repo.Len() != 0 {
		t.Fatalf("expected no partial write, got %d records", repo.Len())
	}
}

func TestGetByInterviewAndUserAbsentSemantics(t *testing.T) {
	gen := NewGenerator(&modelStub{}, NewInMemoryRepository())

	for name, pair := range map[string][2]string{
		"empty interview": {"", "uid"},
		"empty user":      {uuid.NewString(), ""},
		"unknown pair":    {uuid.NewString(), "uid"},
	} {
		fb, err := gen.GetByInterviewAndUser(context.Background(), pair[0], pair[1])
		if err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		if fb != nil {
			t.Fatalf("%s: expected absent feedback", name)
		}
	}
}
