// Package localstore is the on-device key-value storage behind the vote
// cache: a single JSON file playing the role the browser's localStorage
// played, with the same fixed keys.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

const (
	keyUserID  = "s-reddit-user-id"
	keyVotes   = "s-reddit-votes"
	keySession = "s-reddit-session"

	fileName = "local.json"
)

type Store struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

// Open loads (or creates) the device store under dir. An empty dir falls back
// to the per-user config directory.
func Open(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}
		dir = filepath.Join(base, "s-reddit")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	s := &Store{
		path: filepath.Join(dir, fileName),
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// first run, nothing persisted yet
	case err != nil:
		return nil, fmt.Errorf("reading device store: %w", err)
	default:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			// A corrupt store is recreated rather than fatal: losing the
			// local vote overlay only costs highlight state.
			s.data = make(map[string]json.RawMessage)
		}
	}
	return s, nil
}

// DeviceID returns the persisted anonymous user identifier, generating and
// storing one on first use. Stable across sessions.
func (s *Store) DeviceID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	if raw, ok := s.data[keyUserID]; ok {
		if err := json.Unmarshal(raw, &id); err == nil && id != "" {
			return id, nil
		}
	}

	id = "user_" + uuid.NewString()
	if err := s.set(keyUserID, id); err != nil {
		return "", err
	}
	return id, nil
}

// LoadVotes returns the serialized vote-direction map, empty if absent.
func (s *Store) LoadVotes() (map[uint]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	votes := make(map[uint]int)
	raw, ok := s.data[keyVotes]
	if !ok {
		return votes, nil
	}
	if err := json.Unmarshal(raw, &votes); err != nil {
		return nil, fmt.Errorf("decoding vote map: %w", err)
	}
	return votes, nil
}

// SaveVotes re-serializes the full vote map to disk. Called synchronously on
// every vote mutation.
func (s *Store) SaveVotes(votes map[uint]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(keyVotes, votes)
}

// SessionToken returns the persisted sign-in token, empty when logged out.
func (s *Store) SessionToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var token string
	if raw, ok := s.data[keySession]; ok {
		if err := json.Unmarshal(raw, &token); err == nil {
			return token
		}
	}
	return ""
}

// SaveSessionToken persists the sign-in token across runs.
func (s *Store) SaveSessionToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(keySession, token)
}

// ClearSession drops the persisted sign-in token.
func (s *Store) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, keySession)
	return s.flush()
}

func (s *Store) set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	s.data[key] = raw
	return s.flush()
}

func (s *Store) flush() error {
	blob, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, blob, 0o600); err != nil {
		return fmt.Errorf("writing device store: %w", err)
	}
	return nil
}
