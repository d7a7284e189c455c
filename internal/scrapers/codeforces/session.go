package codeforces

import (
	"sync"

	"lazycf/internal/components/assert"
	"lazycf/internal/cookiestore"
)

type SessionState int

const (
	SessionAnonymous SessionState = iota
	SessionVerifying
	SessionAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionAnonymous:
		return "anonymous"
	case SessionVerifying:
		return "verifying"
	case SessionAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Session is the process wide login state. It is created once, mutated only
// by the Authenticator and read by everything else.
type Session struct {
	Jar *cookiestore.Store

	mu     sync.RWMutex
	state  SessionState
	handle string
}

func NewSession(jar *cookiestore.Store) *Session {
	assert.NotNil(jar, "jar")
	return &Session{Jar: jar}
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Handle returns the handle the session belongs to, or the handle that is
// being verified.
func (s *Session) Handle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handle
}

func (s *Session) Authenticated() bool {
	return s.State() == SessionAuthenticated
}

func (s *Session) set(state SessionState, handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.handle = handle
}
