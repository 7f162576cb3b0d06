package tokenstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory [Store] for tests and short-lived processes.
// It holds at most one session behind a mutex; Load returns a copy so callers
// cannot mutate the stored state.
type MemoryStore struct {
	mu   sync.RWMutex
	sess *Session
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the current session, or (nil, nil) when empty.
func (s *MemoryStore) Load(ctx context.Context) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.Clone(), nil
}

// Save replaces the stored session with a copy of sess.
func (s *MemoryStore) Save(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess.Clone()
	return nil
}

// SetAccessToken replaces the access token of the existing session.
func (s *MemoryStore) SetAccessToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return ErrNoSession
	}
	s.sess.AccessToken = token
	return nil
}

// Clear removes the session.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	return nil
}
