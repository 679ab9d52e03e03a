package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"maritime-assistant-be/internal/bootstrap"
	"maritime-assistant-be/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(dir, "app.log"),
			LLMLogFilePath:     filepath.Join(dir, "llm.log"),
			CorsAllowedOrigins: "http://localhost:5173",
			UploadDir:          filepath.Join(dir, "uploads"),
		},
		Ai: config.AIConfig{
			LLMProvider:       "none",
			ClassifierTimeout: time.Second,
			FallbackTimeout:   time.Second,
		},
		Auth:   config.AuthConfig{JWTSecret: "server-test", TokenTTL: time.Hour},
		Cache:  config.CacheConfig{WeatherTTL: time.Minute, WeatherProvider: "simulated"},
		Ingest: config.IngestConfig{Topic: "PROCESS_DOCUMENT"},
	}
}

func TestServerRoutes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container := bootstrap.NewContainer(ctx, nil, testConfig(t))
	defer container.Close()
	require.NoError(t, container.Start(ctx))

	app := New(testConfig(t), container).GetApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/maritime/distance", strings.NewReader(`{"fromPort":"Hamburg","toPort":"Rotterdam"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"distanceNM":237`)

	// Seeded on Start.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/knowledge-base", nil))
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Great Circle Distance")

	preflight := httptest.NewRequest(http.MethodOptions, "/api/conversations", nil)
	preflight.Header.Set("Origin", "http://localhost:5173")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err = app.Test(preflight)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
