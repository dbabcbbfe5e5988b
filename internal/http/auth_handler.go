package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"prepmate/internal/auth"
	"prepmate/internal/users"
)

const sessionCookieName = "session"

// AuthHandler exposes sign-up, sign-in and session endpoints.
type AuthHandler struct {
	directory    *users.Directory
	sessions     *auth.Service
	logger       *slog.Logger
	secureCookie bool
}

// NewAuthHandler creates a handler wired with the user directory and session manager.
func NewAuthHandler(directory *users.Directory, sessions *auth.Service, env string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		directory:    directory,
		sessions:     sessions,
		logger:       logger,
		secureCookie: !strings.EqualFold(env, "development"),
	}
}

// SignUp stores the profile for a freshly created provider account.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UID   string `json:"uid"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONError(w, err)
		return
	}

	err := h.directory.Register(r.Context(), payload.UID, payload.Name, payload.Email)
	switch {
	case err == nil:
		writeResult(w, http.StatusCreated, true, "Account created successfully. Please sign in.")
	case errors.Is(err, users.ErrInvalidInput):
		writeResult(w, http.StatusBadRequest, false, "Invalid signup data")
	case errors.Is(err, users.ErrAlreadyExists):
		writeResult(w, http.StatusConflict, false, "User already exists. Please sign in.")
	case errors.Is(err, users.ErrEmailInUse):
		writeResult(w, http.StatusConflict, false, "This email is already in use")
	default:
		h.logger.Error("sign up failed", "error", err)
		writeResult(w, http.StatusInternalServerError, false, "Failed to create account. Please try again.")
	}
}

// SignIn verifies the provider account and issues the session cookie.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email   string `json:"email"`
		IDToken string `json:"idToken"`
	}

	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONError(w, err)
		return
	}

	cookieValue, err := h.directory.SignIn(r.Context(), payload.Email, payload.IDToken)
	switch {
	case err == nil:
		http.SetCookie(w, h.sessionCookie(cookieValue, auth.SessionTTL))
		writeResult(w, http.StatusOK, true, "Signed in successfully")
	case errors.Is(err, users.ErrInvalidInput):
		writeResult(w, http.StatusBadRequest, false, "Email and identity token are required")
	case errors.Is(err, users.ErrNotFound):
		writeResult(w, http.StatusNotFound, false, "User does not exist. Create an account.")
	default:
		h.logger.Error("sign in failed", "error", err)
		writeResult(w, http.StatusInternalServerError, false, "Failed to log into account. Please try again.")
	}
}

// SignOut clears the session cookie. Always succeeds.
func (h *AuthHandler) SignOut(w http.ResponseWriter, _ *http.Request) {
	clearCookie := h.sessionCookie("", 0)
	clearCookie.MaxAge = -1
	clearCookie.Expires = time.Unix(0, 0)

	http.SetCookie(w, clearCookie)
	w.WriteHeader(http.StatusNoContent)
}

// Status reports whether the request holds a valid session. Absence is a
// regular 200 response, not an error.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	var cookieValue string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		cookieValue = cookie.Value
	}

	user, err := h.sessions.CurrentUser(r.Context(), cookieValue)
	if err != nil || user == nil {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          user,
	})
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookie,
		MaxAge:   int(ttl.Seconds()),
	}
	if ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
	}
	return cookie
}
