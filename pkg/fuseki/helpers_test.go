// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// recorded is one request seen by fakeServer.
type recorded struct {
	Method      string
	Path        string
	Query       url.Values
	ContentType string
	Accept      string
	Body        string
	User        string
	Password    string
	HasAuth     bool
	RequestID   string
	UserAgent   string
}

// reply is a canned response.
type reply struct {
	status int
	body   string
}

// fakeServer answers "METHOD /path" with canned replies and records every request.
type fakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recorded
	replies  map[string]reply
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{replies: map[string]reply{}}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) on(method, path string, status int, body string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.replies[method+" "+path] = reply{status: status, body: body}
}

func (fs *fakeServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	user, pass, ok := r.BasicAuth()
	rec := recorded{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.Query(),
		ContentType: r.Header.Get("Content-Type"),
		Accept:      r.Header.Get("Accept"),
		Body:        string(body),
		User:        user,
		Password:    pass,
		HasAuth:     ok,
		RequestID:   r.Header.Get("X-Request-Id"),
		UserAgent:   r.Header.Get("User-Agent"),
	}

	fs.mu.Lock()
	fs.requests = append(fs.requests, rec)
	rep, found := fs.replies[r.Method+" "+r.URL.Path]
	fs.mu.Unlock()

	if !found {
		rep = reply{status: http.StatusNotFound}
	}
	if strings.HasPrefix(rep.body, "{") || strings.HasPrefix(rep.body, "[") {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(rep.status)
	_, _ = io.WriteString(w, rep.body)
}

func (fs *fakeServer) recorded() []recorded {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]recorded(nil), fs.requests...)
}

// config points a Config at the fake server.
func (fs *fakeServer) config(t *testing.T) Config {
	t.Helper()
	u, err := url.Parse(fs.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return Config{Host: u.Hostname(), Port: port}
}

func (fs *fakeServer) transport(t *testing.T, opts ...Option) *Transport {
	t.Helper()
	return NewTransport(fs.config(t), opts...)
}
