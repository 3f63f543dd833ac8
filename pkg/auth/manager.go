package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"verigate/pkg/apierror"
	"verigate/pkg/config"
	"verigate/pkg/logging"
)

// Manager owns token acquisition, caching, expiry, the project's permission
// inventory, and invalidation. It is safe for use by any number of
// goroutines: concurrent callers that all observe a cache miss collapse into
// exactly one fetch against the token endpoint.
type Manager struct {
	tokenURL      string
	fallbackTTL   time.Duration
	authorization string

	httpClient *http.Client
	store      TokenStore

	// group deduplicates concurrent token fetches.
	group singleflight.Group
}

// ManagerOption configures the manager.
type ManagerOption func(*Manager)

// WithHTTPClient sets a custom HTTP client for token endpoint calls.
func WithHTTPClient(httpClient *http.Client) ManagerOption {
	return func(m *Manager) {
		m.httpClient = httpClient
	}
}

// WithTokenStore substitutes the token storage, e.g. a file-backed store
// shared between processes.
func WithTokenStore(store TokenStore) ManagerOption {
	return func(m *Manager) {
		m.store = store
	}
}

// NewManager creates a token manager for the given resolved configuration.
func NewManager(cfg config.Config, opts ...ManagerOption) *Manager {
	credentials := cfg.ClientID + ":" + cfg.ClientSecret

	m := &Manager{
		tokenURL:      cfg.TokenURL,
		fallbackTTL:   cfg.TokenTTL,
		authorization: "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials)),
		httpClient:    &http.Client{Timeout: cfg.RequestTimeout},
		store:         NewMemoryStore(),
	}

	for _, opt := range opts {
		opt(m)
	}

	logging.Debug("Auth", "Token manager initialized for client_id=%s", cfg.ClientID)
	return m
}

// Token returns a valid token, fetching a new one only when the cached token
// is missing or expired. Concurrent callers against an empty or expired
// cache share a single fetch and all receive the identical token.
func (m *Manager) Token(ctx context.Context) (*Token, error) {
	if token := m.store.Get(); token.Valid() {
		logging.Debug("Auth", "Using cached token, expires_at=%s", token.ExpiresAt.Format(time.RFC3339))
		return token, nil
	}

	result, err, _ := m.group.Do("token", func() (interface{}, error) {
		// Double-check after winning the flight: another caller may have
		// refreshed the slot while we were queued.
		if token := m.store.Get(); token.Valid() {
			logging.Debug("Auth", "Token was refreshed by a concurrent caller, reusing")
			return token, nil
		}

		logging.Debug("Auth", "Token expired or missing, fetching new token")
		return m.fetchToken(ctx)
	})
	if err != nil {
		return nil, err
	}

	return result.(*Token), nil
}

// AuthorizationHeader returns the "Bearer ..." header value for a valid
// token, fetching one if necessary.
func (m *Manager) AuthorizationHeader(ctx context.Context) (string, error) {
	token, err := m.Token(ctx)
	if err != nil {
		return "", err
	}
	return "Bearer " + token.AccessToken, nil
}

// fetchToken performs the client-credentials exchange against the token
// endpoint. Every failure mode (transport, non-success status, malformed
// payload) surfaces as an authentication error carrying whatever raw
// response exists.
func (m *Manager) fetchToken(ctx context.Context) (*Token, error) {
	logging.Debug("Auth", "Requesting new token from %s", m.tokenURL)

	form := url.Values{
		"grant_type": {"client_credentials"},
		"scope":      {"profile"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &apierror.Error{
			Kind:    apierror.KindAuthentication,
			Message: "failed to build token request",
			Err:     err,
		}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", m.authorization)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		logging.Error("Auth", err, "Token request failed")
		return nil, &apierror.Error{
			Kind:    apierror.KindAuthentication,
			Message: "token request failed",
			Reason:  err.Error(),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apierror.Error{
			Kind:       apierror.KindAuthentication,
			Message:    "failed to read token response",
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.Error("Auth", nil, "Token request failed with status %d", resp.StatusCode)
		return nil, &apierror.Error{
			Kind:       apierror.KindAuthentication,
			Message:    "token endpoint rejected credentials",
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	now := time.Now()
	var token Token
	if err := json.Unmarshal(body, &token); err != nil || token.AccessToken == "" {
		return nil, &apierror.Error{
			Kind:       apierror.KindAuthentication,
			Message:    "malformed token response",
			StatusCode: resp.StatusCode,
			Body:       body,
			Err:        err,
		}
	}

	token.setExpiresAt(now, m.fallbackTTL)
	m.store.Put(&token)

	logging.Info("Auth", "Token refreshed successfully, expires_at=%s", token.ExpiresAt.Format(time.RFC3339))
	return &token, nil
}

// Invalidate clears the cached token so the next Token call unconditionally
// refetches. Called by the dispatcher after a confirmed 401.
func (m *Manager) Invalidate() {
	logging.Debug("Auth", "Token invalidated")
	m.store.Clear()
}

// CheckScope verifies that the current token's permission inventory
// satisfies the requirement. A token must already be present (Token is
// always called first in the dispatch order); the check itself never touches
// the network.
func (m *Manager) CheckScope(required Requirement) error {
	if len(required) == 0 {
		return nil
	}

	token := m.store.Get()
	if !token.Valid() {
		return &apierror.Error{
			Kind:    apierror.KindAuthentication,
			Message: "no valid token available for scope check",
		}
	}

	return checkActions(required, token.APIActions)
}

// Info returns a read-only snapshot of the current token state.
func (m *Manager) Info() Info {
	token := m.store.Get()
	if token == nil {
		return Info{APIActions: []string{}}
	}

	actions := token.APIActions
	if actions == nil {
		actions = []string{}
	}

	return Info{
		IsValid:         token.Valid(),
		ExpiresAt:       token.ExpiresAt,
		ClientName:      token.ClientName,
		MarketplaceUser: token.MarketplaceUser,
		Scope:           token.Scope,
		APIActions:      actions,
	}
}
