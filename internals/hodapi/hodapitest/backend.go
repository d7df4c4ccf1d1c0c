// Package hodapitest runs a fake HOD backend for tests.
package hodapitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"obehod_backend/internals/hodapi"
)

// Request is one call recorded by the backend.
type Request struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

// Backend is an httptest server with per-route handlers and a call log.
type Backend struct {
	t   *testing.T
	srv *httptest.Server
	mux *http.ServeMux

	mu    sync.Mutex
	calls map[string]int
	log   []Request
}

func New(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{t: t, mux: http.NewServeMux(), calls: map[string]int{}}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.log = append(b.log, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
		Body:   body,
	})
	b.mu.Unlock()

	_, pattern := b.mux.Handler(r)
	if pattern != "" {
		b.mu.Lock()
		b.calls[pattern]++
		b.mu.Unlock()
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	b.mux.ServeHTTP(w, r)
}

// Handle registers h for a ServeMux pattern such as
// "GET /hod/courses/{courseId}/assignments".
func (b *Backend) Handle(pattern string, h http.HandlerFunc) {
	b.mux.HandleFunc(pattern, h)
}

// JSON registers a fixed JSON reply.
func (b *Backend) JSON(pattern string, status int, body any) {
	b.Handle(pattern, func(w http.ResponseWriter, _ *http.Request) {
		Reply(w, status, body)
	})
}

// Calls is how many requests matched pattern.
func (b *Backend) Calls(pattern string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[pattern]
}

// Requests returns a copy of the call log.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Request, len(b.log))
	copy(out, b.log)
	return out
}

func (b *Backend) URL() string { return b.srv.URL }

// Client returns a hodapi client pointed at the backend.
func (b *Backend) Client() *hodapi.Client {
	b.t.Helper()
	c, err := hodapi.New(hodapi.Config{BaseURL: b.srv.URL, Token: "service-token"})
	require.NoError(b.t, err)
	return c
}

// Reply writes body as JSON with status.
func Reply(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if raw, ok := body.(string); ok {
		_, _ = io.WriteString(w, raw)
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}
