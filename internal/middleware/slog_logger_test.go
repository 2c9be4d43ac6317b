package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-planner/internal/middleware"
)

// logOne runs a single request through NewSlogLogger and returns the parsed
// log line, or nil when nothing was logged.
func logOne(t *testing.T, level slog.Level, path string, status int) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level}))

	h := middleware.NewSlogLogger(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{}`))
		}),
	)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	// Simulate what chimiddleware.RequestID does: inject a known ID into context.
	ctx := context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-req-id")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, status, rec.Code)

	if buf.Len() == 0 {
		return nil
	}
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestSlogLogger_logsRequestFields verifies that the SlogLogger middleware
// writes a structured JSON log line containing method, path, status, size,
// duration, and the request ID placed in context by chi's RequestID middleware.
func TestSlogLogger_logsRequestFields(t *testing.T) {
	entry := logOne(t, slog.LevelInfo, "/trips", http.StatusOK)

	require.NotNil(t, entry)
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/trips", entry["path"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.EqualValues(t, 2, entry["bytes"])
	assert.Equal(t, "test-req-id", entry["request_id"])
	assert.NotNil(t, entry["duration_ms"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestSlogLogger_levelByStatus(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{http.StatusConflict, "WARN"},
		{http.StatusBadGateway, "ERROR"},
	}
	for _, tc := range cases {
		entry := logOne(t, slog.LevelInfo, "/trips/x/plan", tc.status)

		require.NotNil(t, entry)
		assert.Equal(t, tc.level, entry["level"], "status %d", tc.status)
	}
}

// TestSlogLogger_healthProbesAreDebug keeps load-balancer probes out of the
// default INFO log.
func TestSlogLogger_healthProbesAreDebug(t *testing.T) {
	assert.Nil(t, logOne(t, slog.LevelInfo, "/healthz", http.StatusOK))

	entry := logOne(t, slog.LevelDebug, "/healthz", http.StatusOK)
	require.NotNil(t, entry)
	assert.Equal(t, "DEBUG", entry["level"])
}
