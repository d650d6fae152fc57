package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureOutput(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	write := func(rel, body string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	write("index.html", "<html>home</html>")
	write("posts/hello/index.html", "<html>hello</html>")
	write("css/style.css", "body{}")
	// A directory that the build never gave an index.html.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o755))
	return dir
}

func TestHandlerServesPages(t *testing.T) {
	h := New(fixtureOutput(t)).Handler()

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/", http.StatusOK, "home"},
		{"/posts/hello/", http.StatusOK, "hello"},
		{"/css/style.css", http.StatusOK, "body{}"},
		{"/missing/", http.StatusNotFound, ""},
		{"/empty/", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.status, rec.Code, "GET %s", tt.path)
		if tt.contains != "" {
			assert.Contains(t, rec.Body.String(), tt.contains)
		}
	}
}

func TestHandlerDisablesCaching(t *testing.T) {
	h := New(fixtureOutput(t)).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", rec.Header().Get("Pragma"))
}
