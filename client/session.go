package client

import "sync"

// Session holds the bearer token issued by the backend for the lifetime of a
// caller's session. It starts empty; GenerateToken fills it and every later
// successful GenerateToken overwrites it. It is never cleared automatically.
//
// A Session is safe for concurrent use and may be shared between clients
// with WithSession.
type Session struct {
	mu    sync.RWMutex
	token string
}

// NewSession returns an empty session.
func NewSession() *Session { return &Session{} }

// NewSessionWithToken returns a session that already holds token, e.g. one
// issued earlier and supplied through configuration. An empty token yields an
// empty session.
func NewSessionWithToken(token string) *Session {
	return &Session{token: token}
}

// Token returns the held token; ok is false until one has been issued.
func (s *Session) Token() (token string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// HasToken reports whether a token is held.
func (s *Session) HasToken() bool {
	_, ok := s.Token()
	return ok
}

// SetToken stores token, replacing any previous one.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}
