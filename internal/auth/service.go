package auth

import (
	"context"
	"time"

	"log/slog"

	"prepmate/internal/identity"
	"prepmate/internal/users"
)

// SessionTTL is the validity of issued session cookies.
const SessionTTL = 7 * 24 * time.Hour

// Service manages provider-backed browser sessions. It implements
// users.SessionIssuer.
type Service struct {
	provider identity.Provider
	users    users.Repository
	logger   *slog.Logger
}

// NewService creates a new session Service.
func NewService(provider identity.Provider, repo users.Repository, logger *slog.Logger) *Service {
	return &Service{provider: provider, users: repo, logger: logger}
}

// IssueSession exchanges a short-lived identity token for a session cookie
// value valid for SessionTTL.
func (s *Service) IssueSession(ctx context.Context, idToken string) (string, error) {
	return s.provider.CreateSessionCookie(ctx, idToken, SessionTTL)
}

// CurrentUser resolves the session cookie to the signed-in user. Every
// failure mode degrades to (nil, nil): no cookie, failed verification (with
// revocation check), and a verified UID without a profile record all read as
// "not signed in". Nothing about the failure leaks to the caller.
func (s *Service) CurrentUser(ctx context.Context, cookie string) (*users.User, error) {
	if cookie == "" {
		return nil, nil
	}

	uid, err := s.provider.VerifySessionCookie(ctx, cookie, true)
	if err != nil {
		s.logger.Debug("session verification failed", "error", err)
		return nil, nil
	}

	user, err := s.users.Get(ctx, uid)
	if err != nil {
		s.logger.Error("load session user", "uid", uid, "error", err)
		return nil, nil
	}
	return user, nil
}

// IsAuthenticated reports whether the cookie resolves to a signed-in user.
func (s *Service) IsAuthenticated(ctx context.Context, cookie string) bool {
	user, _ := s.CurrentUser(ctx, cookie)
	return user != nil
}
