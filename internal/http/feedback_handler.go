package http

import (
	"errors"
	"net/http"

	"log/slog"

	"prepmate/internal/feedback"
	"prepmate/internal/platform/metrics"
)

// FeedbackHandler drives the feedback generation pipeline.
type FeedbackHandler struct {
	generator *feedback.Generator
	collector *metrics.Collector
	logger    *slog.Logger
}

func NewFeedbackHandler(generator *feedback.Generator, collector *metrics.Collector, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{generator: generator, collector: collector, logger: logger}
}

// Create scores the submitted transcript and persists the result. The user id
// always comes from the session, never from the payload.
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		unauthorized(w)
		return
	}

	var payload struct {
		InterviewID string             `json:"interviewId"`
		Transcript  []feedback.Message `json:"transcript"`
		FeedbackID  string             `json:"feedbackId"`
	}

	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONError(w, err)
		return
	}

	id, err := h.generator.Generate(r.Context(), payload.InterviewID, user.ID, payload.Transcript, payload.FeedbackID)
	switch {
	case err == nil:
		h.record("success")
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "feedbackId": id})
	case errors.Is(err, feedback.ErrInvalidInput):
		h.record("invalid")
		writeResult(w, http.StatusBadRequest, false, "interviewId and a non-empty transcript are required")
	default:
		h.record("error")
		h.logger.Error("feedback generation failed", "error", err, "interview_id", payload.InterviewID)
		writeResult(w, http.StatusInternalServerError, false, "Failed to generate feedback. Please try again.")
	}
}

func (h *FeedbackHandler) record(outcome string) {
	if h.collector != nil {
		h.collector.RecordGeneration(outcome)
	}
}
