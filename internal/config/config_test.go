package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "KidTask API", cfg.AppName)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	require.Equal(t, 5*time.Minute, cfg.DashboardCacheTTL)
	require.Equal(t, time.Minute, cfg.RateLimitWindow)
	require.Equal(t, "kidtask.tasks.assigned", cfg.NATSSubject)
	require.Contains(t, cfg.DatabaseDSN, "mode=memory")
	require.Empty(t, cfg.RedisURL)
	require.Empty(t, cfg.TUILogFile)
	require.Equal(t, 30*time.Second, cfg.StreamKeepAlive)
	require.Equal(t, "*", cfg.CORSAllowOrigins)
	require.False(t, cfg.AccessLog)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("KIDTASK_APP_PORT", ":9090")
	t.Setenv("KIDTASK_LOG_LEVEL", "DEBUG")
	t.Setenv("KIDTASK_DASHBOARD_CACHE_TTL", "30s")
	t.Setenv("KIDTASK_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("KIDTASK_RATE_LIMIT_MAX", "-1")
	t.Setenv("KIDTASK_TUI_LOG_FILE", "/tmp/kidtask-tui.log")
	t.Setenv("KIDTASK_HTTP_ACCESS_LOG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	require.Equal(t, 30*time.Second, cfg.DashboardCacheTTL)
	require.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	require.Equal(t, 120, cfg.RateLimitMax)
	require.Equal(t, "/tmp/kidtask-tui.log", cfg.TUILogFile)
	require.True(t, cfg.AccessLog)
}

func TestLoadRejectsInvalidDurations(t *testing.T) {
	t.Setenv("KIDTASK_DASHBOARD_CACHE_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
}
