package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

const (
	defaultEndpoint = "https://identitytoolkit.googleapis.com/v1"

	// Session cookies are minted by the provider and signed with keys
	// published for the session.firebase.google.com service account.
	sessionCookieIssuerPrefix = "https://session.firebase.google.com/"
	sessionCookieKeysURL      = "https://www.googleapis.com/service_accounts/v1/jwk/session.firebase.google.com"

	identityToolkitScope = "https://www.googleapis.com/auth/identitytoolkit"
)

// Credentials holds the service account used to call the identity provider.
type Credentials struct {
	ProjectID   string
	ClientEmail string
	PrivateKey  string
}

// Client calls the Google Identity Toolkit REST API. It implements Provider.
type Client struct {
	httpClient  *http.Client
	projectID   string
	endpoint    string
	tokenSource oauth2.TokenSource
	verifier    *oidc.IDTokenVerifier
}

// Option configures the Client during construction.
type Option func(*Client)

// WithEndpoint overrides the Identity Toolkit base URL.
func WithEndpoint(baseURL string) Option {
	return func(c *Client) {
		c.endpoint = strings.TrimRight(baseURL, "/")
	}
}

// WithTokenSource overrides the outbound credential token source.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokenSource = ts
	}
}

// WithVerifier overrides the session cookie verifier.
func WithVerifier(v *oidc.IDTokenVerifier) Option {
	return func(c *Client) {
		c.verifier = v
	}
}

// NewClient constructs a Client authenticated as the given service account.
func NewClient(ctx context.Context, creds Credentials, client *http.Client, opts ...Option) (*Client, error) {
	if creds.ProjectID == "" || creds.ClientEmail == "" || creds.PrivateKey == "" {
		return nil, fmt.Errorf("identity: incomplete service account credentials")
	}

	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	c := &Client{
		httpClient: client,
		projectID:  creds.ProjectID,
		endpoint:   defaultEndpoint,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.tokenSource == nil {
		conf := &jwt.Config{
			Email:      creds.ClientEmail,
			PrivateKey: []byte(creds.PrivateKey),
			Scopes:     []string{identityToolkitScope},
			TokenURL:   google.JWTTokenURL,
		}
		c.tokenSource = oauth2.ReuseTokenSource(nil, conf.TokenSource(ctx))
	}

	if c.verifier == nil {
		keySet := oidc.NewRemoteKeySet(oidc.ClientContext(ctx, client), sessionCookieKeysURL)
		c.verifier = oidc.NewVerifier(
			sessionCookieIssuerPrefix+creds.ProjectID,
			keySet,
			&oidc.Config{ClientID: creds.ProjectID},
		)
	}

	return c, nil
}

// CreateSessionCookie exchanges an ID token for a long-lived session cookie.
func (c *Client) CreateSessionCookie(ctx context.Context, idToken string, validFor time.Duration) (string, error) {
	if idToken == "" {
		return "", ErrInvalidToken
	}

	var payload struct {
		SessionCookie string `json:"sessionCookie"`
	}

	req := map[string]string{
		"idToken":       idToken,
		"validDuration": strconv.FormatInt(int64(validFor.Seconds()), 10),
	}
	path := fmt.Sprintf("/projects/%s:createSessionCookie", c.projectID)
	if err := c.post(ctx, path, req, &payload); err != nil {
		return "", err
	}

	if payload.SessionCookie == "" {
		return "", fmt.Errorf("identity: provider returned empty session cookie")
	}
	return payload.SessionCookie, nil
}

// VerifySessionCookie validates the cookie and returns the subject UID.
func (c *Client) VerifySessionCookie(ctx context.Context, cookie string, checkRevoked bool) (string, error) {
	if cookie == "" {
		return "", ErrInvalidToken
	}

	token, err := c.verifier.Verify(oidc.ClientContext(ctx, c.httpClient), cookie)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if token.Subject == "" {
		return "", ErrInvalidToken
	}

	if checkRevoked {
		account, err := c.lookupByUID(ctx, token.Subject)
		if err != nil {
			return "", err
		}
		if account.Disabled {
			return "", ErrTokenRevoked
		}
		if !account.validSince.IsZero() && token.IssuedAt.Before(account.validSince) {
			return "", ErrTokenRevoked
		}
	}

	return token.Subject, nil
}

// GetUserByEmail looks up a provider account by email.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*Account, error) {
	if email == "" {
		return nil, ErrUserNotFound
	}
	account, err := c.lookup(ctx, map[string][]string{"email": {email}})
	if err != nil {
		return nil, err
	}
	return &account.Account, nil
}

// lookupAccount carries the provider fields consumed internally.
type lookupAccount struct {
	Account
	validSince time.Time
}

func (c *Client) lookupByUID(ctx context.Context, uid string) (*lookupAccount, error) {
	return c.lookup(ctx, map[string][]string{"localId": {uid}})
}

func (c *Client) lookup(ctx context.Context, req map[string][]string) (*lookupAccount, error) {
	var payload struct {
		Users []struct {
			LocalID     string `json:"localId"`
			Email       string `json:"email"`
			DisplayName string `json:"displayName"`
			Disabled    bool   `json:"disabled"`
			ValidSince  string `json:"validSince"`
		} `json:"users"`
	}

	path := fmt.Sprintf("/projects/%s/accounts:lookup", c.projectID)
	if err := c.post(ctx, path, req, &payload); err != nil {
		return nil, err
	}

	if len(payload.Users) == 0 {
		return nil, ErrUserNotFound
	}

	user := payload.Users[0]
	account := &lookupAccount{
		Account: Account{
			UID:         user.LocalID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Disabled:    user.Disabled,
		},
	}
	if seconds, err := strconv.ParseInt(user.ValidSince, 10, 64); err == nil {
		account.validSince = time.Unix(seconds, 0)
	}
	return account, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("identity: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("identity: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.tokenSource.Token()
	if err != nil {
		return fmt.Errorf("identity: obtain access token: %w", err)
	}
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity: call provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return translateError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("identity: decode response: %w", err)
	}
	return nil
}

// translateError maps provider error codes onto the local sentinel errors.
func translateError(resp *http.Response) error {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	code, _, _ := strings.Cut(payload.Error.Message, " ")
	switch code {
	case "EMAIL_NOT_FOUND", "USER_NOT_FOUND":
		return ErrUserNotFound
	case "EMAIL_EXISTS", "DUPLICATE_EMAIL":
		return ErrEmailExists
	case "INVALID_ID_TOKEN", "TOKEN_EXPIRED", "INVALID_SESSION_COOKIE":
		return ErrInvalidToken
	}

	if code == "" {
		return fmt.Errorf("identity: provider returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("identity: provider error %s (status %d)", code, resp.StatusCode)
}
