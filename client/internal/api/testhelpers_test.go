package api

import (
	"fmt"
	"net/http"
	"sync"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// memSession is a minimal in-memory types.Session.
type memSession struct {
	mu  sync.Mutex
	tok string
}

func (m *memSession) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tok, m.tok != ""
}

func (m *memSession) SetToken(t string) {
	m.mu.Lock()
	m.tok = t
	m.mu.Unlock()
}

func connFor(hc *http.Client, baseURL string) Conn {
	return Conn{HTTP: hc, BaseURL: baseURL}
}
