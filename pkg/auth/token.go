package auth

import (
	"time"

	"golang.org/x/oauth2"
)

// expiryMargin is subtracted from the server-reported lifetime when the
// absolute expiry instant is computed, so a token is refreshed before the
// gateway actually stops accepting it. Accounts for clock skew and network
// latency.
const expiryMargin = 60 * time.Second

// Token is a short-lived bearer credential obtained via the
// client-credentials exchange, together with the project metadata the token
// endpoint reports. A Token is never mutated after it is built; the manager
// replaces the whole value on refresh so concurrent readers cannot observe a
// partially updated token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds as reported by the token
	// endpoint; ExpiresAt is the absolute instant computed from it, already
	// including the safety margin.
	ExpiresIn int       `json:"expires_in"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`

	Scope           string `json:"scope"`
	ClientName      string `json:"client_name"`
	MarketplaceUser string `json:"marketplace_user"`

	// APIActions is the permission inventory of the registered project. Each
	// entry names one API family the token may call.
	APIActions []string `json:"api-routing-actions"`
}

// Valid reports whether the token exists and has not reached its expiry
// instant.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" || t.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().Before(t.ExpiresAt)
}

// setExpiresAt computes the absolute expiry from the server-reported
// lifetime, falling back to the configured TTL when the endpoint omits
// expires_in.
func (t *Token) setExpiresAt(now time.Time, fallback time.Duration) {
	ttl := time.Duration(t.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = fallback
	}
	t.ExpiresAt = now.Add(ttl - expiryMargin)
}

// ToOAuth2Token converts the token for use with golang.org/x/oauth2
// consumers.
func (t *Token) ToOAuth2Token() *oauth2.Token {
	tokenType := t.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return &oauth2.Token{
		AccessToken: t.AccessToken,
		TokenType:   tokenType,
		Expiry:      t.ExpiresAt,
	}
}

// Info is a read-only snapshot of the manager's token state, exposed to host
// applications for diagnostics.
type Info struct {
	IsValid         bool      `json:"is_valid"`
	ExpiresAt       time.Time `json:"expires_at,omitempty"`
	ClientName      string    `json:"client_name,omitempty"`
	MarketplaceUser string    `json:"marketplace_user,omitempty"`
	Scope           string    `json:"scope,omitempty"`
	APIActions      []string  `json:"api_actions"`
}
