package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, 1000, cfg.RateLimit.RequestsPerHour)
	assert.InDelta(t, 0.1, cfg.AI.AnalysisTemperature, 1e-9)
	assert.InDelta(t, 0.5, cfg.AI.DefaultTemperature, 1e-9)
	assert.True(t, cfg.IsDev())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
port: 8080
env: production
rate_limit:
  requests_per_hour: 50
ai:
  analysis_temperature: 0.2
  providers:
    - id: main
      type: anthropic
      api_key: test-key
      enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, 50, cfg.RateLimit.RequestsPerHour)
	assert.InDelta(t, 0.2, cfg.AI.AnalysisTemperature, 1e-9)
	require.Len(t, cfg.AI.Providers, 1)
	assert.Equal(t, "anthropic", cfg.AI.Providers[0].Type)
}

func TestLoadRejectsUnknownEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("env: staging\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
