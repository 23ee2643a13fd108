// Package memory holds per-user session text in process memory. No eviction:
// a bounded or TTL store can replace it behind the same interface.
package memory

import (
	"sync"

	"github.com/arashpr/cheatbot/internal/core/domain"
)

type SessionStore struct {
	mu    sync.RWMutex
	texts map[domain.UserID]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{texts: make(map[domain.UserID]string)}
}

// Set overwrites the user's session unconditionally. Last write wins.
func (s *SessionStore) Set(user domain.UserID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[user] = text
}

func (s *SessionStore) Get(user domain.UserID) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.texts[user]
	return text, ok
}

// Clear removes the user's session. No-op when none exists.
func (s *SessionStore) Clear(user domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.texts, user)
}

// Len reports the number of live sessions, for metrics.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.texts)
}
