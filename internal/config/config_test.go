package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/cjenovnik")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, 2*time.Minute, cfg.PriceCacheTTL)
	require.EqualValues(t, 100, cfg.SavingsThresholdMinor)
	require.Equal(t, 30, cfg.OptimizeRateMax)
	require.False(t, cfg.RunMigrations)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRequiresRedisURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/cjenovnik")
	t.Setenv("REDIS_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/cjenovnik")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("OPTIMIZE_RATE_MAX", "5")
	t.Setenv("SAVINGS_THRESHOLD_MINOR", "250")
	t.Setenv("DB_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	require.Equal(t, 5, cfg.OptimizeRateMax)
	require.EqualValues(t, 250, cfg.SavingsThresholdMinor)
	require.True(t, cfg.RunMigrations)
}
