package http

import (
	"net/http"
	"strconv"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"prepmate/internal/feedback"
	"prepmate/internal/interviews"
)

// InterviewHandler serves the interview feed and per-interview lookups.
type InterviewHandler struct {
	interviews *interviews.Service
	feedback   *feedback.Generator
	logger     *slog.Logger
}

func NewInterviewHandler(svc *interviews.Service, generator *feedback.Generator, logger *slog.Logger) *InterviewHandler {
	return &InterviewHandler{interviews: svc, feedback: generator, logger: logger}
}

// Latest returns finalized interviews from other users, newest first.
func (h *InterviewHandler) Latest(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		unauthorized(w)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	list, err := h.interviews.ListLatest(r.Context(), user.ID, limit)
	if err != nil {
		h.logger.Error("list latest interviews failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list interviews")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"interviews": list})
}

// Mine returns the authenticated user's own interviews, newest first.
func (h *InterviewHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		unauthorized(w)
		return
	}

	list, err := h.interviews.ListByUser(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("list user interviews failed", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "failed to list interviews")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"interviews": list})
}

// Get returns a single interview by id.
func (h *InterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	interview, err := h.interviews.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get interview failed", "error", err, "interview_id", id)
		writeError(w, http.StatusInternalServerError, "failed to load interview")
		return
	}
	if interview == nil {
		writeError(w, http.StatusNotFound, "interview not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"interview": interview})
}

// Feedback returns the authenticated user's feedback for the interview.
func (h *InterviewHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		unauthorized(w)
		return
	}
	id := chi.URLParam(r, "id")

	fb, err := h.feedback.GetByInterviewAndUser(r.Context(), id, user.ID)
	if err != nil {
		h.logger.Error("get feedback failed", "error", err, "interview_id", id)
		writeError(w, http.StatusInternalServerError, "failed to load feedback")
		return
	}
	if fb == nil {
		writeError(w, http.StatusNotFound, "feedback not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"feedback": fb})
}
