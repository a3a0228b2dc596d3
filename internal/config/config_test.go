package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
)

func TestLoadConfig_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("ADMIN_PASSWORD", "letmein")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PROPERTY_CACHE_TTL", "90s")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MAX_IMAGES_PER_PROPERTY", "6")

	cfg, err := LoadConfig(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "hbestate", cfg.MongoDatabase)
	assert.Equal(t, 90*time.Second, cfg.PropertyCacheTTL)
	assert.Equal(t, 12*time.Hour, cfg.AdminTokenTTL)
	assert.True(t, cfg.MinioUseSSL)
	assert.Equal(t, 6, cfg.MaxImagesPerProperty)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "IN", cfg.PhoneRegion)
	assert.False(t, cfg.SMTPEnabled())
}

func TestLoadConfig_RequiresSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	_, err := LoadConfig(logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
}

func TestConfig_SMTPEnabled(t *testing.T) {
	c := &Config{SMTPHost: "smtp.example.com"}
	assert.False(t, c.SMTPEnabled())
	c.NotifyEmail = "sales@example.com"
	assert.True(t, c.SMTPEnabled())
}
