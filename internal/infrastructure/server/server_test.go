package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/FileAgent/backend/internal/api/middleware"
	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/logging"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Files.BasePath = t.TempDir()
	cfg.Intent.Enabled = false
	cfg.Logging.Development = true
	return cfg
}

func TestServerRoutes(t *testing.T) {
	srv, err := NewServer(testConfig(t), logging.NewNop())
	require.NoError(t, err)

	for _, path := range []string{"/", "/api/health", "/api/operations", "/metrics", "/metrics/json"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader), path)
	}
}

func TestServerExecuteWithMoveLock(t *testing.T) {
	cfg := testConfig(t)
	cfg.Files.MoveLock = true
	cfg.Files.LockDir = t.TempDir()

	srv, err := NewServer(cfg, logging.NewNop())
	require.NoError(t, err)

	body := []byte(`{"action":"create_folder","params":{"folder_name":"inbox"}}`)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest("POST", "/api/execute", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.DirExists(t, filepath.Join(cfg.Files.BasePath, "inbox"))

	body = []byte(`{"action":"move_files","params":{"destination_directory":"out","pattern":"*.none"}}`)
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest("POST", "/api/execute", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "No files found matching pattern: *.none", res["message"])
}

func TestServerHealthReportsResolver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Intent.Enabled = true
	cfg.Intent.Model = "tiny"

	srv, err := NewServer(cfg, logging.NewNop())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/api/health", nil))

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	intent := health["intent"].(map[string]interface{})
	assert.Equal(t, "tiny", intent["model"])
	assert.Equal(t, "closed", intent["circuit"])
}

func TestServerRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit.RequestsPerSecond = 1
	cfg.RateLimit.Burst = 1

	srv, err := NewServer(cfg, logging.NewNop())
	require.NoError(t, err)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/api/health", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestServerRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"

	srv, err := NewServer(cfg, logging.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
