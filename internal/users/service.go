package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"prepmate/internal/identity"
)

// SessionIssuer exchanges a short-lived identity token for a session cookie
// value. Implemented by the auth session manager.
type SessionIssuer interface {
	IssueSession(ctx context.Context, idToken string) (string, error)
}

// Directory provides registration and sign-in for provider-backed users.
type Directory struct {
	repo     Repository
	provider identity.Provider
	sessions SessionIssuer
}

// NewDirectory wires a Directory with its collaborators.
func NewDirectory(repo Repository, provider identity.Provider, sessions SessionIssuer) *Directory {
	return &Directory{repo: repo, provider: provider, sessions: sessions}
}

// Register creates the profile record for a freshly created provider account.
// The UID comes from the identity provider and is stored as-is; this service
// never generates its own IDs.
func (d *Directory) Register(ctx context.Context, uid, name, email string) error {
	uid = strings.TrimSpace(uid)
	email = strings.TrimSpace(email)
	if uid == "" || email == "" {
		return ErrInvalidInput
	}

	user := User{
		ID:        uid,
		Name:      strings.TrimSpace(name),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	if err := d.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// SignIn verifies that a provider account exists for the email and issues a
// session cookie from the supplied identity token. It returns the cookie value.
func (d *Directory) SignIn(ctx context.Context, email, idToken string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || idToken == "" {
		return "", ErrInvalidInput
	}

	if _, err := d.provider.GetUserByEmail(ctx, email); err != nil {
		return "", translateProviderError(err)
	}

	cookie, err := d.sessions.IssueSession(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return cookie, nil
}

// Get returns the profile for the given provider UID, or (nil, nil) when absent.
func (d *Directory) Get(ctx context.Context, uid string) (*User, error) {
	if uid == "" {
		return nil, nil
	}
	return d.repo.Get(ctx, uid)
}

// translateProviderError maps identity provider errors onto the local
// taxonomy so callers never inspect provider error shapes.
func translateProviderError(err error) error {
	switch {
	case errors.Is(err, identity.ErrUserNotFound):
		return ErrNotFound
	case errors.Is(err, identity.ErrEmailExists):
		return ErrEmailInUse
	default:
		return fmt.Errorf("identity provider: %w", err)
	}
}
