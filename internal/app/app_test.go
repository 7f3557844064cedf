package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lesson_quiz_backend/internal/config"
	"lesson_quiz_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, string) {
	t.Helper()
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	dir := t.TempDir()
	cfg.Server.Mode = "test"
	cfg.Log.File = ""
	cfg.Storage.SubmissionFile = filepath.Join(dir, "submissions.json")

	a, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(a.shutdown)
	return a, cfg.Storage.SubmissionFile
}

func serve(a *App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}

func TestGenerateEndToEnd(t *testing.T) {
	a, file := newTestApp(t)

	rec := serve(a, http.MethodPost, "/api/generate", `{"content":"Rivers carry water to the sea. Rain feeds the rivers.","num_questions":3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	var saved []model.Submission
	require.NoError(t, json.Unmarshal(raw, &saved))
	require.Len(t, saved, 1)
	assert.Len(t, saved[0].Questions, 3)
	assert.Equal(t, "Rivers carry water to the sea. Rain feeds the rivers.", saved[0].Content)
}

func TestRouterFallbacks(t *testing.T) {
	a, _ := newTestApp(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/generate", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(a, tt.method, tt.path, "").Code)
		})
	}
}
