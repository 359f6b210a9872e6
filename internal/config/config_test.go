package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-3-flash-preview", cfg.AdviceModel)
	assert.Equal(t, "veo-3.1-fast-generate-preview", cfg.VideoModel)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.VideoPollInterval)
	assert.Equal(t, 60, cfg.VideoMaxPolls)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("PORT", "9090")
	t.Setenv("VIDEO_POLL_INTERVAL", "2s")
	t.Setenv("VIDEO_MAX_POLLS", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.VideoPollInterval)
	assert.Equal(t, 5, cfg.VideoMaxPolls)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_RejectsNonPositivePolling(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("VIDEO_MAX_POLLS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingKeyIsAllowed(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.GeminiAPIKey)
}
