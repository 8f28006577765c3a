package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricescan/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dataDir := t.TempDir()
	path := filepath.Join(t.TempDir(), "pricescan.yaml")
	content := "scan:\n  data_dir: " + dataDir + "\nlogging:\n  level: error\n  format: text\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	return cfg
}

func TestNewApplication_Routes(t *testing.T) {
	app, err := NewApplication(testConfig(t))
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{name: "health", method: http.MethodGet, path: "/api/v1/health", status: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", status: http.StatusOK},
		{name: "scan", method: http.MethodPost, path: "/api/v1/scan", status: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/nope", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK && tt.path != "/metrics" {
				assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			}
		})
	}
}

func TestNewApplication_InvalidScheduleRejected(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scan.Schedule = "every hour or so"

	_, err := NewApplication(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scan schedule")
}

func TestNewApplication_ValidScheduleAccepted(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scan.Schedule = "@every 1h"

	app, err := NewApplication(cfg)

	require.NoError(t, err)
	assert.NotNil(t, app.cron)
}
