// Package sandboxtest runs the sandbox API on a local httptest server and
// records every request it receives.
package sandboxtest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/speedmed/clinic-console/internal/platform/gateway"
	"github.com/speedmed/clinic-console/internal/platform/sandbox"
	"github.com/speedmed/clinic-console/internal/platform/view"
)

// Request is a recorded call.
type Request struct {
	Method string
	Path   string
	Body   []byte
}

type Server struct {
	*httptest.Server
	Store *sandbox.Store

	mu       sync.Mutex
	requests []Request
}

// New starts an empty sandbox that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{Store: sandbox.NewStore()}
	api := sandbox.NewServer(zerolog.Nop(), s.Store)
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Body: body})
		s.mu.Unlock()
		api.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// Client returns a gateway client pointed at the sandbox.
func (s *Server) Client(n view.Notifier) *gateway.Client {
	return gateway.New(s.URL, gateway.WithNotifier(n))
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Forget drops the recorded requests, typically after fixtures are loaded.
func (s *Server) Forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// Writes returns the recorded requests that are not GETs.
func (s *Server) Writes() []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method != http.MethodGet {
			out = append(out, r)
		}
	}
	return out
}
