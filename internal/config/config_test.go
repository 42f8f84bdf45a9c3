package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.GeminiModel)
	assert.Equal(t, 4096, cfg.LLM.MaxTokens)
	assert.Equal(t, 15, cfg.Source.TimeoutSecs)
	assert.NotEmpty(t, cfg.Source.UserAgent)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PEOPLEAGG_LLM_PROVIDER", "openai")
	t.Setenv("PEOPLEAGG_SERVER_PORT", "9100")
	t.Setenv("PEOPLEAGG_SOURCE_TIMEOUT_SECS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Source.TimeoutSecs)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
}

func TestInitLogger_BadLevel(t *testing.T) {
	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}
