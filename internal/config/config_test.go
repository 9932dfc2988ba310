package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.ProductsAPI.BaseURL)
	assert.Equal(t, 1000, cfg.ProductsAPI.FetchLimit)
	assert.Equal(t, 8, cfg.Catalog.PageSize)
	assert.Equal(t, 1000000.0, cfg.Catalog.DefaultMaxPrice)
	assert.Equal(t, DefaultCategories, cfg.Catalog.Categories)
	assert.Equal(t, 30*time.Minute, cfg.Catalog.SessionTTL)
	assert.Equal(t, 72*time.Hour, cfg.Admin.TokenTTL)
	assert.False(t, cfg.Database.Enabled())
	assert.Empty(t, cfg.RabbitMQ.URL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PRODUCTS_API_URL", " http://products:8000 ")
	t.Setenv("CATALOG_PAGE_SIZE", "12")
	t.Setenv("CATALOG_DEFAULT_MAX_PRICE", "2000000")
	t.Setenv("CATALOG_CATEGORIES", "men, women ,,accessories")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("DB_HOST", "db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://products:8000", cfg.ProductsAPI.BaseURL)
	assert.Equal(t, 12, cfg.Catalog.PageSize)
	assert.Equal(t, 2000000.0, cfg.Catalog.DefaultMaxPrice)
	assert.Equal(t, []string{"men", "women", "accessories"}, cfg.Catalog.Categories)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.SessionTTL)
	assert.True(t, cfg.Database.Enabled())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"page size not a number", "CATALOG_PAGE_SIZE", "eight"},
		{"page size zero", "CATALOG_PAGE_SIZE", "0"},
		{"negative max price", "CATALOG_DEFAULT_MAX_PRICE", "-1"},
		{"bad ttl", "SESSION_TTL", "forever"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_ProductionRequiresJWTSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "a-real-secret", cfg.Admin.JWTSecret)
}

func TestNewLogger_Level(t *testing.T) {
	cfg := &Config{Environment: "production", LogLevel: "warn"}
	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	cfg = &Config{Environment: "development", LogLevel: "debug"}
	logger, err = cfg.NewLogger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	cfg = &Config{LogLevel: "loud"}
	_, err = cfg.NewLogger()
	assert.Error(t, err)
}
