// Package session holds the authentication token shared by API calls and
// mirrors it to a persistent Store.
package session

import (
	"context"
	"log"
	"sync"
)

// Store persists the raw auth token between runs.
// Load returns "" with a nil error when nothing has been stored.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Session is the in-memory auth token plus its persistent mirror.
// Persistence is best-effort: store failures are logged and never returned.
type Session struct {
	mu     sync.RWMutex
	token  string
	store  Store
	logger *log.Logger

	// writeMu serializes SetToken so memory and store see writes in the same order.
	writeMu sync.Mutex
}

// New creates a session and loads any persisted token once.
// A nil store keeps the token in memory only; a nil logger uses log.Default().
func New(ctx context.Context, store Store, logger *log.Logger) *Session {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{store: store, logger: logger}

	token, err := store.Load(ctx)
	if err != nil {
		logger.Printf("[SESSION] Failed to load auth token from storage: %v", err)
		return s
	}
	s.token = token
	if token != "" {
		logger.Printf("[SESSION] Auth token loaded from storage: Found")
	} else {
		logger.Printf("[SESSION] Auth token loaded from storage: Not found")
	}
	return s
}

// Token returns the current token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// HasToken reports whether a token is present.
func (s *Session) HasToken() bool {
	return s.Token() != ""
}

// SetToken replaces the in-memory token and mirrors it to the store.
// An empty token signs out and removes the persisted value.
func (s *Session) SetToken(ctx context.Context, token string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if token != "" {
		if err := s.store.Save(ctx, token); err != nil {
			s.logger.Printf("[SESSION] Failed to store auth token: %v", err)
		}
		return
	}
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Printf("[SESSION] Failed to remove auth token: %v", err)
	}
}

// Clear is shorthand for SetToken(ctx, "").
func (s *Session) Clear(ctx context.Context) {
	s.SetToken(ctx, "")
}
