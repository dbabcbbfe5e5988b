package identity

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors. Provider-specific error codes are translated into these at
// the client boundary; callers never see raw provider responses.
var (
	// ErrUserNotFound is returned when no account exists for the given lookup.
	ErrUserNotFound = errors.New("identity: user not found")
	// ErrEmailExists is returned when the provider already has an account for the email.
	ErrEmailExists = errors.New("identity: email already registered")
	// ErrInvalidToken is returned when a token or session cookie fails verification.
	ErrInvalidToken = errors.New("identity: invalid token")
	// ErrTokenRevoked is returned when a session cookie was issued before the
	// account's sessions were revoked.
	ErrTokenRevoked = errors.New("identity: token revoked")
)

// Account is the subset of a provider user record the application reads.
type Account struct {
	UID         string
	Email       string
	DisplayName string
	Disabled    bool
}

// Provider is the boundary to the managed identity service.
type Provider interface {
	// CreateSessionCookie exchanges a short-lived ID token for a signed
	// session cookie valid for the given duration.
	CreateSessionCookie(ctx context.Context, idToken string, validFor time.Duration) (string, error)
	// VerifySessionCookie checks the cookie's signature, issuer, audience and
	// expiry and returns the subject UID. With checkRevoked it additionally
	// rejects cookies issued before the account's sessions were revoked.
	VerifySessionCookie(ctx context.Context, cookie string, checkRevoked bool) (string, error)
	// GetUserByEmail looks up a provider account by email address.
	GetUserByEmail(ctx context.Context, email string) (*Account, error)
}
