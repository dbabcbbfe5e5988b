package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"prepmate/internal/identity"
)

type providerStub struct {
	createSessionCookie func(ctx context.Context, idToken string, validFor time.Duration) (string, error)
	verifySessionCookie func(ctx context.Context, cookie string, checkRevoked bool) (string, error)
	getUserByEmail      func(ctx context.Context, email string) (*identity.Account, error)
}

func (p *providerStub) CreateSessionCookie(ctx context.Context, idToken string, validFor time.Duration) (string, error) {
	if p.createSessionCookie != nil {
		return p.createSessionCookie(ctx, idToken, validFor)
	}
	return "cookie", nil
}

func (p *providerStub) VerifySessionCookie(ctx context.Context, cookie string, checkRevoked bool) (string, error) {
	if p.verifySessionCookie != nil {
		return p.verifySessionCookie(ctx, cookie, checkRevoked)
	}
	return "", identity.ErrInvalidToken
}

func (p *providerStub) GetUserByEmail(ctx context.Context, email string) (*identity.Account, error) {
	if p.getUserByEmail != nil {
		return p.getUserByEmail(ctx, email)
	}
	return &identity.Account{UID: "uid", Email: email}, nil
}

type issuerStub struct {
	issue func(ctx context.Context, idToken string) (string, error)
}

func (s *issuerStub) IssueSession(ctx context.Context, idToken string) (string, error) {
	if s.issue != nil {
		return s.issue(ctx, idToken)
	}
	return "session-cookie", nil
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	repo := NewInMemoryRepository()
	dir := NewDirectory(repo, &providerStub{}, &issuerStub{})

	cases := []struct {
		name string
		uid  string
		mail string
	}{
		{"missing uid", "", "user@example.com"},
		{"missing email", "uid-1", ""},
		{"missing both", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := dir.Register(context.Background(), tc.uid, "Name", tc.mail)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	if user, _ := repo.Get(context.Background(), "uid-1"); user != nil {
		t.Fatal("expected no write for invalid input")
	}
}

func TestRegisterRoundTrip(t *testing.T) {
	repo := NewInMemoryRepository()
	dir := NewDirectory(repo, &providerStub{}, &issuerStub{})

	before := time.Now().UTC()
	if err := dir.Register(context.Background(), "uid-1", "  Jane  ", "jane@example.com"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	user, err := dir.Get(context.Background(), "uid-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if user == nil {
		t.Fatal("expected user to be stored")
	}
	if user.ID != "uid-1" || user.Name != "Jane" || user.Email != "jane@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.CreatedAt.Before(before) || user.CreatedAt.After(time.Now().UTC()) {
		t.Fatalf("unexpected createdAt %v", user.CreatedAt)
	}
}

func TestRegisterDuplicateUID(t *testing.T) {
	repo := NewInMemoryRepository()
	dir := NewDirectory(repo, &providerStub{}, &issuerStub{})

	if err := dir.Register(context.Background(), "uid-1", "Jane", "jane@example.com"); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	err := dir.Register(context.Background(), "uid-1", "Other", "other@example.com")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// The original record is untouched.
	user, _ := repo.Get(context.Background(), "uid-1")
	if user == nil || user.Email != "jane@example.com" {
		t.Fatalf("expected original record to survive, got %+v", user)
	}
}

func TestSignInUnknownEmail(t *testing.T) {
	provider := &providerStub{
		getUserByEmail: func(ctx context.Context, email string) (*identity.Account, error) {
			return nil, identity.ErrUserNotFound
		},
	}
	dir := NewDirectory(NewInMemoryRepository(), provider, &issuerStub{})

	_, err := dir.SignIn(context.Background(), "missing@example.com", "id-token")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSignInIssuesSession(t *testing.T) {
	var issuedToken string
	issuer := &issuerStub{
		issue: func(ctx context.Context, idToken string) (string, error) {
			issuedToken = idToken
			return "session-cookie", nil
		},
	}
	dir := NewDirectory(NewInMemoryRepository(), &providerStub{}, issuer)

	cookie, err := dir.SignIn(context.Background(), "jane@example.com", "id-token")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if cookie != "session-cookie" {
		t.Fatalf("unexpected cookie %q", cookie)
	}
	if issuedToken != "id-token" {
		t.Fatalf("expected session issued from supplied token, got %q", issuedToken)
	}
}

func TestSignInCollapsesProviderFailures(t *testing.T) {
	provider := &providerStub{
		getUserByEmail: func(ctx context.Context, email string) (*identity.Account, error) {
			return nil, errors.New("network down")
		},
	}
	dir := NewDirectory(NewInMemoryRepository(), provider, &issuerStub{})

	_, err := dir.SignIn(context.Background(), "jane@example.com", "id-token")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrEmailInUse) {
		t.Fatalf("generic failure should not map to a taxonomy error, got %v", err)
	}
}

func TestGetEmptyUIDSkipsLookup(t *testing.T) {
	dir := NewDirectory(NewInMemoryRepository(), &providerStub{}, &issuerStub{})

	user, err := dir.Get(context.Background(), "")
	if err != nil || user != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", user, err)
	}
}
