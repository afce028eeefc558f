package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 30*time.Second, cfg.GetTimeout())
	assert.Equal(t, 50, cfg.GetPageSize())
	assert.Equal(t, time.Minute, cfg.GetCacheTTL())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLogLevel, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_url: https://admin.example.com/api
timeout: 5s
requests_per_second: 4
page_size: 20
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://admin.example.com/api", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.GetTimeout())
	assert.Equal(t, 4.0, cfg.RequestsPerSecond)
	assert.Equal(t, 20, cfg.GetPageSize())
	assert.Equal(t, 10, cfg.Burst, "unset keys keep their default")
}

func TestLoad_EnvWins(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://staging.internal/api")
	t.Setenv(EnvLogLevel, "debug")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: https://prod.example.com\nlog_level: warn\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://staging.internal/api", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLogLevel, "")

	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "api_url: [", "parse config"},
		{"bad timeout", "timeout: soon", "timeout"},
		{"negative ttl", "cache_ttl: -1m", "cache_ttl"},
		{"negative rps", "requests_per_second: -2", "requests_per_second"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0600))
			_, err := Load(path)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLogLevel, "")

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.APIURL = "https://admin.example.com"
	cfg.CloudinaryUploadURL = "http://localhost:9999/%s/upload"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaultPath_Env(t *testing.T) {
	t.Setenv(EnvConfig, "/tmp/custom.yaml")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", p)
}
