package webserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dialectlab/retain/internal/aggregate"
	"github.com/dialectlab/retain/internal/models"
	"github.com/dialectlab/retain/internal/resultstore"
)

func seedRun(t *testing.T, dir, id string) {
	t.Helper()
	records := []models.ScoredRecord{
		{Model: "gemini/gemini-2.5-flash", Variety: "AAVE", Task: "paraphrase", ExpectedMarkers: []string{"finna"}, FoundMarkers: []string{"finna"}, RetentionRate: 1.0, Success: true},
	}
	run := &models.RunResult{
		RunID:     id,
		Timestamp: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Models:    []string{"gemini/gemini-2.5-flash"},
		Records:   records,
		Summary:   aggregate.Summarize(records),
	}
	_, err := resultstore.New(dir).Save(run, false)
	require.NoError(t, err)
}

func newTestServer(t *testing.T, dir string) *Server {
	t.Helper()
	srv, err := New(Config{ResultsDir: dir, NoBrowser: true})
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, h http.Handler, path string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	resp := rec.Result()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

func TestServer_Index(t *testing.T) {
	dir := t.TempDir()
	seedRun(t, dir, "run-one")
	srv := newTestServer(t, dir)

	resp, body := get(t, srv.Handler(), "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	require.Contains(t, body, "Retention Benchmark Runs")
	require.Contains(t, body, `<a href="/report/run-one">`)
	require.Contains(t, body, "100.0%")
}

func TestServer_IndexEmpty(t *testing.T) {
	srv := newTestServer(t, t.TempDir())

	resp, body := get(t, srv.Handler(), "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "No runs recorded yet")
}

func TestServer_Report(t *testing.T) {
	dir := t.TempDir()
	seedRun(t, dir, "run-one")
	srv := newTestServer(t, dir)

	t.Run("found", func(t *testing.T) {
		resp, body := get(t, srv.Handler(), "/report/run-one")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		require.Contains(t, body, "Retention Report: run-one")
	})

	t.Run("not found", func(t *testing.T) {
		resp, _ := get(t, srv.Handler(), "/report/missing")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServer_APIRoutes(t *testing.T) {
	dir := t.TempDir()
	seedRun(t, dir, "run-one")
	srv := newTestServer(t, dir)

	resp, body := get(t, srv.Handler(), "/api/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, `"status":"ok"`)

	resp, body = get(t, srv.Handler(), "/api/runs")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "run-one")
}

func TestServer_Defaults(t *testing.T) {
	srv, err := New(Config{})
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:3000", srv.srv.Addr)
	require.Equal(t, "results", srv.cfg.ResultsDir)
}
