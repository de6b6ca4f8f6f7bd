package domain

import "sync"

// Session owns the loaded identity and the unwrapped group keys for one run.
// It replaces any global "current user" state: the top-level controller
// builds one Session and passes it down. The group-key cache avoids a
// private-key operation per group message; Reset invalidates everything on
// logout or identity clear.
type Session struct {
	mu        sync.RWMutex
	identity  *Identity
	groupKeys map[string]GroupKey
}

func NewSession() *Session {
	return &Session{groupKeys: make(map[string]GroupKey)}
}

// Attach sets the active identity.
func (s *Session) Attach(id *Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = id
}

// Identity returns the active identity or ErrNoSession.
func (s *Session) Identity() (*Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil, ErrNoSession
	}
	return s.identity, nil
}

// CacheGroupKey remembers an unwrapped group key for this session.
func (s *Session) CacheGroupKey(groupID string, key GroupKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groupKeys[groupID] = key
}

// CachedGroupKey looks up a previously unwrapped group key.
func (s *Session) CachedGroupKey(groupID string) (GroupKey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.groupKeys[groupID]
	return k, ok
}

// Reset detaches the identity and drops every cached group key.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.groupKeys = make(map[string]GroupKey)
}
