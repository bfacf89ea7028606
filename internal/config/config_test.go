package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, 14, cfg.JWTExpiresDays)
	assert.Equal(t, "wordconnect_token", cfg.CookieName)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.LevelFile)
	assert.False(t, cfg.Production())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LEVEL_FILE", "/tmp/level.yaml")
	t.Setenv("REQUEST_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.Production())
	assert.Equal(t, "/tmp/level.yaml", cfg.LevelFile)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoadError(t *testing.T) {
	t.Setenv("JWT_EXPIRES_DAYS", "two weeks")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestSetupLogging(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	Config{LogLevel: "warn"}.SetupLogging()
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	Config{LogLevel: "loud"}.SetupLogging()
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
