package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"verigate/pkg/logging"
)

// TokenStore holds the manager's single token slot. The default store keeps
// the token in process memory; implementations backed by shared storage can
// be injected so several processes reuse one token. Put replaces the slot
// wholesale and Get must return the last value put, or nil when the slot is
// empty or cleared.
type TokenStore interface {
	Get() *Token
	Put(*Token)
	Clear()
}

// memoryStore is the default in-process token slot.
type memoryStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewMemoryStore returns the default in-memory token store.
func NewMemoryStore() TokenStore {
	return &memoryStore{}
}

func (s *memoryStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *memoryStore) Put(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *memoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
}

// FileStore persists the token slot to a JSON file so separate processes of
// the same host application can share one token. The file is created with
// 0600 permissions and its directory with 0700; token values are never
// logged.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed token store at the given path, creating
// the parent directory if needed.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("token store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create token storage directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Get() *Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.Warn("Auth", "Failed to read token file %s: %v", s.path, err)
		}
		return nil
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		logging.Warn("Auth", "Discarding unreadable token file %s: %v", s.path, err)
		return nil
	}
	return &token
}

func (s *FileStore) Put(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(token)
	if err != nil {
		logging.Error("Auth", err, "Failed to encode token for %s", s.path)
		return
	}

	// Write-then-rename so a concurrent reader never sees a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		logging.Error("Auth", err, "Failed to persist token to %s", s.path)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		logging.Error("Auth", err, "Failed to persist token to %s", s.path)
	}
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn("Auth", "Failed to remove token file %s: %v", s.path, err)
	}
}
