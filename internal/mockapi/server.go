// Package mockapi is an in-process implementation of the blockcheck backend
// API. It serves the same routes and wire shapes as the real service and
// records every request, for tests and local development.
package mockapi

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const (
	MsgUnauthorized   = "Invalid or missing token"
	MsgInvalidAddress = "Invalid address"
	MsgENSNotFound    = "ENS name not found"
)

// Recorded is one request as the server saw it.
type Recorded struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	RequestID     string
	Body          string
}

// Server is the mock backend. The zero value is not usable; call New.
type Server struct {
	mu        sync.Mutex
	tokens    map[string]bool
	ens       map[string]string
	contracts map[string]bool
	requests  []Recorded

	legacyContractField bool
	requireAuth         bool
	failNext            map[string]int // path prefix -> remaining 503s

	router *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithENS registers name -> address for /resolveEns.
func WithENS(name, address string) Option {
	return func(s *Server) { s.ens[strings.ToLower(name)] = address }
}

// WithContract marks address as holding code for /isContract.
func WithContract(address string) Option {
	return func(s *Server) { s.contracts[strings.ToLower(address)] = true }
}

// WithLegacyContractField makes /isContract answer with is_contract instead
// of isContract.
func WithLegacyContractField() Option {
	return func(s *Server) { s.legacyContractField = true }
}

// WithoutAuth accepts requests that carry no token.
func WithoutAuth() Option {
	return func(s *Server) { s.requireAuth = false }
}

// New returns a Server with its routes installed.
func New(opts ...Option) *Server {
	s := &Server{
		tokens:      make(map[string]bool),
		ens:         make(map[string]string),
		contracts:   make(map[string]bool),
		failNext:    make(map[string]int),
		requireAuth: true,
	}
	for _, o := range opts {
		o(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	// Match on the escaped path so %2F inside a segment stays in the variable.
	router := mux.NewRouter().UseEncodedPath()
	router.Use(recoverer)
	router.Use(s.record)
	router.Use(s.injectFailures)

	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	v1 := router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/token", s.handleToken).Methods("POST")

	authed := v1.NewRoute().Subrouter()
	authed.Use(s.authorize)
	authed.HandleFunc("/validate/{address}", s.handleValidate).Methods("GET")
	authed.HandleFunc("/resolveEns/{name}", s.handleResolve).Methods("GET")
	authed.HandleFunc("/isContract/{address}", s.handleIsContract).Methods("GET")
	return router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// IssuedTokens returns how many tokens have been handed out.
func (s *Server) IssuedTokens() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// FailNext makes the next n requests whose path starts with prefix answer
// 503 with an empty body.
func (s *Server) FailNext(prefix string, n int) {
	s.mu.Lock()
	s.failNext[prefix] = n
	s.mu.Unlock()
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(strings.NewReader(string(body)))
		}
		rec := Recorded{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Body:          string(body),
		}
		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()

		log.Debug().Str("method", rec.Method).Str("path", rec.Path).Str("request_id", rec.RequestID).Msg("mockapi request")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		fail := false
		for prefix, n := range s.failNext {
			if n > 0 && strings.HasPrefix(r.URL.Path, prefix) {
				s.failNext[prefix] = n - 1
				fail = true
				break
			}
		}
		s.mu.Unlock()
		if fail {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.requireAuth {
			next.ServeHTTP(w, r)
			return
		}
		tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		valid := ok && s.tokens[tok]
		s.mu.Unlock()
		if !valid {
			writeText(w, http.StatusUnauthorized, MsgUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// newToken issues an opaque token and remembers it.
func (s *Server) newToken() (token, apiKey string) {
	apiKey = uuid.NewString()
	token = "bc_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	s.mu.Lock()
	s.tokens[token] = true
	s.mu.Unlock()
	return token, apiKey
}
