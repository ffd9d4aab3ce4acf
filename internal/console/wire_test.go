package console

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/sectors/pkg/sectorsdk"
)

type wireRequest struct {
	method string
	path   string
	body   string
}

// wireServer serves a fixed sector list and records every request made by
// the console through the real SDK client.
type wireServer struct {
	mu       sync.Mutex
	reqs     []wireRequest
	failList bool
}

func (s *wireServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.reqs = append(s.reqs, wireRequest{method: r.Method, path: r.URL.Path, body: string(b)})
	failList := s.failList
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/sectors":
		if failList {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error":"server_error"}`)
			return
		}
		_, _ = io.WriteString(w, `[{"id":5,"name":"Energy"},{"id":7,"name":"Tourism"}]`)
	case r.Method == http.MethodGet && r.URL.Path == "/api/sectors/5":
		_, _ = io.WriteString(w, `{"id":5,"name":"Energy"}`)
	case r.Method == http.MethodPost:
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":9,"name":"Finance"}`)
	case r.Method == http.MethodPut:
		_, _ = io.WriteString(w, `{"id":5,"name":"Power"}`)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"not_found"}`)
	}
}

func (s *wireServer) take() []wireRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	reqs := s.reqs
	s.reqs = nil
	return reqs
}

func newWireConsole(t *testing.T) (Model, *wireServer) {
	t.Helper()

	ws := &wireServer{}
	srv := httptest.NewServer(ws)
	t.Cleanup(srv.Close)

	m := start(t, sectorsdk.NewClient(srv.URL))
	require.Equal(t, []wireRequest{{method: http.MethodGet, path: "/api/sectors"}}, ws.take())
	return m, ws
}

func TestWireCreate(t *testing.T) {
	t.Parallel()

	m, ws := newWireConsole(t)

	m = press(t, m, "a")
	m = typeText(t, m, "Finance")
	m = press(t, m, "enter")

	reqs := ws.take()
	require.Len(t, reqs, 2)
	require.Equal(t, http.MethodPost, reqs[0].method)
	require.Equal(t, "/api/sectors", reqs[0].path)
	require.JSONEq(t, `{"id":null,"name":"Finance"}`, reqs[0].body)
	require.Equal(t, wireRequest{method: http.MethodGet, path: "/api/sectors"}, reqs[1])
	require.False(t, m.form.visible())
}

func TestWireEdit(t *testing.T) {
	t.Parallel()

	m, ws := newWireConsole(t)
	m = selectID(t, m, 5)

	m = press(t, m, "e")
	require.Equal(t, []wireRequest{{method: http.MethodGet, path: "/api/sectors/5"}}, ws.take())
	require.Equal(t, "Energy", m.form.input.Value())

	m = press(t, m, "ctrl+u")
	m = typeText(t, m, "Power")
	m = press(t, m, "enter")

	reqs := ws.take()
	require.Len(t, reqs, 2)
	require.Equal(t, http.MethodPut, reqs[0].method)
	require.Equal(t, "/api/sectors/5", reqs[0].path)
	require.JSONEq(t, `{"id":5,"name":"Power"}`, reqs[0].body)
	require.Equal(t, http.MethodGet, reqs[1].method)
}

func TestWireDelete(t *testing.T) {
	t.Parallel()

	m, ws := newWireConsole(t)
	m = selectID(t, m, 7)

	m = press(t, m, "d", "n")
	require.Empty(t, ws.take())

	m = press(t, m, "d", "y")
	reqs := ws.take()
	require.Len(t, reqs, 2)
	require.Equal(t, wireRequest{method: http.MethodDelete, path: "/api/sectors/7"}, reqs[0])
	require.Equal(t, wireRequest{method: http.MethodGet, path: "/api/sectors"}, reqs[1])
	require.False(t, m.confirm.visible)
}

func TestWireListFailure(t *testing.T) {
	t.Parallel()

	m, ws := newWireConsole(t)
	ws.mu.Lock()
	ws.failList = true
	ws.mu.Unlock()

	m = press(t, m, "r")
	require.Len(t, m.table.Rows(), 1)
	require.Equal(t, MsgLoadFailed, m.table.Rows()[0][0])
	require.True(t, strings.Contains(m.View(), MsgLoadFailed))
}
