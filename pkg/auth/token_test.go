package auth

import (
	"os"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestToken_Valid(t *testing.T) {
	tests := []struct {
		name     string
		token    *Token
		expected bool
	}{
		{
			name:     "nil token",
			token:    nil,
			expected: false,
		},
		{
			name:     "missing access token",
			token:    &Token{ExpiresAt: time.Now().Add(time.Hour)},
			expected: false,
		},
		{
			name:     "no expiry set",
			token:    &Token{AccessToken: "tok1"},
			expected: false,
		},
		{
			name:     "expired",
			token:    &Token{AccessToken: "tok1", ExpiresAt: time.Now().Add(-time.Second)},
			expected: false,
		},
		{
			name:     "live",
			token:    &Token{AccessToken: "tok1", ExpiresAt: time.Now().Add(time.Minute)},
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.token.Valid(); got != tc.expected {
				t.Errorf("Valid() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestToken_SetExpiresAt_FallbackTTL(t *testing.T) {
	token := &Token{AccessToken: "tok1"}
	now := time.Now()
	token.setExpiresAt(now, 1799*time.Second)

	expected := now.Add(1799*time.Second - expiryMargin)
	if !token.ExpiresAt.Equal(expected) {
		t.Errorf("Expected fallback expiry %s, got %s", expected, token.ExpiresAt)
	}
}

func TestToken_ToOAuth2Token(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	token := &Token{AccessToken: "tok1", ExpiresAt: expiry}

	converted := token.ToOAuth2Token()
	if converted.AccessToken != "tok1" {
		t.Errorf("Expected access token tok1, got %q", converted.AccessToken)
	}
	if converted.TokenType != "Bearer" {
		t.Errorf("Expected default token type Bearer, got %q", converted.TokenType)
	}
	if !converted.Expiry.Equal(expiry) {
		t.Errorf("Expected expiry %s, got %s", expiry, converted.Expiry)
	}
	if !converted.Valid() {
		t.Error("Expected converted token to be valid")
	}
}
