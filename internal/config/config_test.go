package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Address())
	assert.Equal(t, "./data/echo.db", cfg.Database.Path)
	assert.Equal(t, "fallback_secret_key", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout())
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 300, cfg.RateLimit.RequestsPerHour)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
llm:
  api_key: file-key
  model: custom-model
rate_limit:
  enabled: false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "file-key", cfg.LLM.APIKey)
	assert.Equal(t, "custom-model", cfg.LLM.Model)
	assert.False(t, cfg.RateLimit.Enabled)
	// Untouched sections keep their defaults
	assert.Equal(t, "fallback_secret_key", cfg.Auth.JWTSecret)
}

func TestGroqKeyFallsBackToEnv(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "env-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
}
