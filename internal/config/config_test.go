package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "secret", cfg.Database.Password)
	require.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	require.Equal(t, 70, cfg.Matching.ScoreThreshold)
	require.Equal(t, 10, cfg.Matching.CandidateLimit)
	require.Equal(t, 500*time.Millisecond, cfg.Matching.ScoreInterval)
	require.Equal(t, 2*time.Minute, cfg.Matching.RunTimeout)
	require.False(t, cfg.IsGeminiConfigured())
	require.False(t, cfg.Logging.JSON)
	require.False(t, cfg.Logging.Debug)
}

func TestLoadLoggingSection(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	require.True(t, cfg.Logging.JSON)
	require.True(t, cfg.Logging.Debug)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("MATCH_SCORE_THRESHOLD", "85")
	t.Setenv("MATCH_SCORE_INTERVAL", "250ms")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 85, cfg.Matching.ScoreThreshold)
	require.Equal(t, 250*time.Millisecond, cfg.Matching.ScoreInterval)
	require.True(t, cfg.IsGeminiConfigured())
	require.Equal(t,
		[]string{"https://app.example.com", "https://admin.example.com"},
		cfg.CORS.AllowedOrigins)
}

func TestLoadRequiresDatabasePassword(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestValidateThresholdBounds(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("MATCH_SCORE_THRESHOLD", "101")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "MATCH_SCORE_THRESHOLD")
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:        "db.supabase.co",
			Port:        "6543",
			User:        "postgres",
			Password:    "pw",
			Name:        "postgres",
			SSLMode:     "require",
			ConnTimeout: 10 * time.Second,
		},
	}

	require.Equal(t,
		"postgres://postgres:pw@db.supabase.co:6543/postgres?sslmode=require&connect_timeout=10",
		cfg.GetDSN())
}
