package auth

import (
	"path/filepath"
	"testing"
	"time"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	if store.Get() != nil {
		t.Error("Expected empty store to return nil")
	}

	token := &Token{AccessToken: "tok1", ExpiresAt: time.Now().Add(time.Hour)}
	store.Put(token)

	if got := store.Get(); got == nil || got.AccessToken != "tok1" {
		t.Errorf("Expected stored token, got %v", got)
	}

	store.Clear()
	if store.Get() != nil {
		t.Error("Expected nil after Clear")
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens", "token.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if store.Get() != nil {
		t.Error("Expected nil before any Put")
	}

	token := &Token{
		AccessToken: "tok1",
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().Add(30 * time.Minute).Truncate(time.Second),
		APIActions:  []string{"VerifyMeNin"},
	}
	store.Put(token)

	// A second store on the same path sees the token: this is the
	// cross-process sharing contract.
	other, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	got := other.Get()
	if got == nil {
		t.Fatal("Expected the persisted token from a second store")
	}
	if got.AccessToken != "tok1" || len(got.APIActions) != 1 {
		t.Errorf("Persisted token mismatch: %+v", got)
	}
	if !got.Valid() {
		t.Error("Expected persisted token to still be valid")
	}

	store.Clear()
	if other.Get() != nil {
		t.Error("Expected nil after Clear")
	}
	// Clearing an already-empty store is fine.
	store.Clear()
}

func TestFileStore_UnreadableFileIsDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	writeFile(t, path, "not json")

	if store.Get() != nil {
		t.Error("Expected nil for an unreadable token file")
	}
}
