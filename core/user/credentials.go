package user

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// TokenStore persists the auth token between runs (the cookie equivalent).
// Only the Gate reads and writes it.
type TokenStore interface {
	SetAuthToken(token string) error
	GetAuthToken() (string, error)
	RemoveAuthToken() error
}

// MemoryTokenStore keeps the token in memory; used in tests and for
// ephemeral sessions.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

var _ TokenStore = (*MemoryTokenStore)(nil)

func (s *MemoryTokenStore) SetAuthToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) GetAuthToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) RemoveAuthToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// FileTokenStore persists the token in a file with owner-only permissions.
type FileTokenStore struct {
	path string
}

var _ TokenStore = (*FileTokenStore)(nil)

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) SetAuthToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "creating token dir")
	}
	return errors.Wrap(os.WriteFile(s.path, []byte(token), 0o600), "writing token")
}

func (s *FileTokenStore) GetAuthToken() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "reading token")
	}
	return string(data), nil
}

func (s *FileTokenStore) RemoveAuthToken() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing token")
	}
	return nil
}
