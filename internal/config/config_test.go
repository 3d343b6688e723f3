package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 24*time.Hour, cfg.JWTAccessTTL)
	assert.Equal(t, time.Hour, cfg.RecoveryTokenTTL)
	assert.Equal(t, "5-M", cfg.ResetRateLimit)
	assert.False(t, cfg.MailerConfigured())
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_ProdRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	_, err = FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RECOVERY_TOKEN_PEPPER")

	t.Setenv("RECOVERY_TOKEN_PEPPER", "a-real-pepper")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestFromEnv_InvalidDuration(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "forever")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_ACCESS_TTL")
}

func TestFromEnv_CORSList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SITE_URL", "https://app.example/")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "https://app.example", cfg.SiteURL)
}

func TestFromEnv_DevConsoleMailer(t *testing.T) {
	t.Setenv("EMAIL_DEV_CONSOLE", "yes")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.MailerConfigured())
}
