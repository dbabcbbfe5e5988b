package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"prepmate/internal/genai"
)

const systemInstruction = "You are a professional interviewer analyzing a mock interview."

// Generator runs the feedback pipeline: format the transcript, ask the model
// for a structured assessment, persist the result.
type Generator struct {
	model genai.Generator
	repo  Repository
}

// NewGenerator wires a Generator with the model client and repository.
func NewGenerator(model genai.Generator, repo Repository) *Generator {
	return &Generator{model: model, repo: repo}
}

// assessment mirrors the structured output schema returned by the model.
type assessment struct {
	TotalScore          int             `json:"totalScore"`
	CategoryScores      []CategoryScore `json:"categoryScores"`
	Strengths           []string        `json:"strengths"`
	AreasForImprovement []string        `json:"areasForImprovement"`
	FinalAssessment     string          `json:"finalAssessment"`
}

// Generate scores the transcript and persists the resulting feedback record.
// When feedbackID is supplied the record at that id is overwritten; otherwise
// a new id is assigned. Returns the persisted id.
func (g *Generator) Generate(ctx context.Context, interviewID, userID string, transcript []Message, feedbackID string) (string, error) {
	if interviewID == "" || userID == "" || len(transcript) == 0 {
		return "", ErrInvalidInput
	}

	interview, err := uuid.Parse(interviewID)
	if err != nil {
		return "", ErrInvalidInput
	}

	id := uuid.New()
	if feedbackID != "" {
		parsed, err := uuid.Parse(feedbackID)
		if err != nil {
			return "", ErrInvalidInput
		}
		id = parsed
	}

	var result assessment
	req := genai.Request{
		System: systemInstruction,
		Prompt: buildPrompt(transcript),
		Schema: assessmentSchema(),
	}
	if err := g.model.GenerateObject(ctx, req, &result); err != nil {
		return "", fmt.Errorf("generate assessment: %w", err)
	}

	fb := Feedback{
		ID:                  id,
		InterviewID:         interview,
		UserID:              userID,
		TotalScore:          result.TotalScore,
		CategoryScores:      result.CategoryScores,
		Strengths:           result.Strengths,
		AreasForImprovement: result.AreasForImprovement,
		FinalAssessment:     result.FinalAssessment,
		CreatedAt:           time.Now().UTC(),
	}

	if err := g.repo.Save(ctx, fb); err != nil {
		return "", fmt.Errorf("save feedback: %w", err)
	}
	return id.String(), nil
}

// GetByInterviewAndUser returns the feedback for the pair, or (nil, nil) when
// either parameter is empty or no record matches.
func (g *Generator) GetByInterviewAndUser(ctx context.Context, interviewID, userID string) (*Feedback, error) {
	if interviewID == "" || userID == "" {
		return nil, nil
	}

	parsed, err := uuid.Parse(interviewID)
	if err != nil {
		return nil, nil
	}
	return g.repo.GetByInterviewAndUser(ctx, parsed, userID)
}

// buildPrompt renders the transcript as role-attributed lines followed by the
// scoring instructions.
func buildPrompt(transcript []Message) string {
	var sb strings.Builder
	sb.WriteString("You are an AI interviewer analyzing a mock interview.\n\nTranscript:\n")
	for _, msg := range transcript {
		fmt.Fprintf(&sb, "- %s: %s\n", msg.Role, msg.Content)
	}

	sb.WriteString("\nScore the candidate from 0-100 in:\n")
	for _, category := range Categories {
		sb.WriteString("- ")
		sb.WriteString(category)
		sb.WriteString("\n")
	}
	return sb.String()
}

// assessmentSchema is the fixed structured-output contract sent to the model.
func assessmentSchema() *genai.Schema {
	score := func(description string) *genai.Schema {
		minimum, maximum := 0.0, 100.0
		return &genai.Schema{
			Type:        "integer",
			Description: description,
			Minimum:     &minimum,
			Maximum:     &maximum,
		}
	}

	return &genai.Schema{
		Type: "object",
		Properties: map[string]*genai.Schema{
			"totalScore": score("Overall score for the interview."),
			"categoryScores": {
				Type:        "array",
				Description: fmt.Sprintf("One entry per category, in order: %s.", strings.Join(Categories, ", ")),
				Items: &genai.Schema{
					Type: "object",
					Properties: map[string]*genai.Schema{
						"name":    {Type: "string"},
						"score":   score("Score for this category."),
						"comment": {Type: "string"},
					},
					Required: []string{"name", "score", "comment"},
				},
			},
			"strengths":           {Type: "array", Items: &genai.Schema{Type: "string"}},
			"areasForImprovement": {Type: "array", Items: &genai.Schema{Type: "string"}},
			"finalAssessment":     {Type: "string"},
		},
		Required: []string{"totalScore", "categoryScores", "strengths", "areasForImprovement", "finalAssessment"},
	}
}
