package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Session is an explicit identity cache handed to whatever needs the current
// user, synchronized with a JSON file so the identity survives restarts.
// It replaces the usual process-wide singleton store.
type Session struct {
	path string

	mu   sync.Mutex
	user *User
}

// LoadSession reads the persisted identity if one exists.
func LoadSession(path string) (*Session, error) {
	s := &Session{path: path}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		// a corrupt cache is not fatal; start logged out
		return s, nil
	}
	s.user = &u
	return s, nil
}

// Current returns the logged-in user, or nil.
func (s *Session) Current() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Set records a login and persists it.
func (s *Session) Set(u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, b, 0o600)
}

// Clear logs out and removes the persisted file.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
