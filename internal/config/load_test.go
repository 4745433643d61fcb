package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "trililingo.db", cfg.Database.Path)
	assert.Equal(t, 10, cfg.Study.DailyLength)
	assert.Equal(t, 7, cfg.Study.PracticeLength)
	assert.Equal(t, 4, cfg.Study.OptionCount)
	assert.Equal(t, 15*time.Minute, cfg.Sync.FlushInterval)
	assert.Equal(t, 50, cfg.Sync.BatchSize)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TRILILINGO_SERVER_PORT", "9191")
	t.Setenv("TRILILINGO_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TRILILINGO_DATABASE_PATH", ":memory:")
	t.Setenv("TRILILINGO_SYNC_FLUSH_INTERVAL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, 30*time.Second, cfg.Sync.FlushInterval)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("TRILILINGO_SERVER_LOG_LEVEL", "loud")

	_, err := Load()
	assert.Error(t, err, "log level outside the allowed set must fail validation")
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("TRILILINGO_SERVER_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}
