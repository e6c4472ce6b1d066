package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/taskrank-api/internal/config"
	"github.com/phrazzld/taskrank-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 0, LogLevel: "debug", ShutdownTimeoutSeconds: 2},
		Scoring: config.ScoringConfig{
			DefaultStrategy: "smart_balance",
			SuggestLimit:    3,
			Weights:         config.WeightsConfig{Urgency: 0.3, Importance: 0.3, Effort: 0.2, Dependencies: 0.2},
		},
	}
}

func newTestApp(t *testing.T) *application {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	app, err := newApplication(testConfig(), log)
	require.NoError(t, err)
	return app
}

const threeTasks = `{"tasks":[
	{"id":"a","title":"A","due_date":"2030-01-01","estimated_hours":1,"importance":5},
	{"id":"b","title":"B","due_date":"2030-01-02","estimated_hours":2,"importance":7,"dependencies":["a"]},
	{"id":"c","title":"C","due_date":"2030-01-03","estimated_hours":3,"importance":3}
]}`

func TestRouter_TaskRoutes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newTestApp(t).setupRouter())
	defer srv.Close()

	for _, path := range []string{
		"/api/tasks/analyze/", "/api/tasks/analyze",
		"/api/tasks/suggest/", "/api/tasks/suggest",
		"/api/tasks/explain/", "/api/tasks/explain",
	} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(threeTasks))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))

			var body struct {
				Tasks []map[string]interface{} `json:"tasks"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Len(t, body.Tasks, 3)
		})
	}
}

func TestRouter_ErrorBodiesCarryTraceID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newTestApp(t).setupRouter())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/tasks/analyze/", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid JSON", body["error"])
	assert.Equal(t, resp.Header.Get("X-Trace-ID"), body["trace_id"])
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	router := newTestApp(t).setupRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouter_UnknownRoutes(t *testing.T) {
	t.Parallel()

	router := newTestApp(t).setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks/analyze/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tasks/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
