package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargodocs/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, int64(20), cfg.Upload.MaxFileSizeMB)
	assert.Equal(t, 150, cfg.Render.DPI)
	assert.Equal(t, 5, cfg.Render.MaxPages)
	assert.Equal(t, 2, cfg.Extract.MaxRetries)
	assert.False(t, cfg.Extract.MergeMultipageTables)
	assert.Equal(t, "openai", cfg.Model.Primary.Provider)
	assert.Equal(t, "gpt-4o", cfg.Model.Primary.DefaultModel)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CARGODOCS_SERVER_PORT", ":9090")
	t.Setenv("CARGODOCS_EXTRACT_MAX_RETRIES", "4")
	t.Setenv("CARGODOCS_EXTRACT_MERGE_MULTIPAGE_TABLES", "true")
	t.Setenv("CARGODOCS_MODEL_PRIMARY_PROVIDER", "gemini")
	t.Setenv("CARGODOCS_MODEL_PRIMARY_API_KEY", "key-123")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 4, cfg.Extract.MaxRetries)
	assert.True(t, cfg.Extract.MergeMultipageTables)
	assert.Equal(t, "gemini", cfg.Model.Primary.Provider)
	assert.Equal(t, "key-123", cfg.Model.Primary.APIKey)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "7777")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Server.Port)
}

func TestLoad_ExplicitPortBeatsPlatformPort(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("CARGODOCS_SERVER_PORT", ":9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoad_CORSOriginsSplit(t *testing.T) {
	t.Setenv("CARGODOCS_CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestSecondaryConfig(t *testing.T) {
	m := &config.ModelConfig{}
	assert.Nil(t, m.SecondaryConfig())

	m.Secondary.Provider = "gemini"
	require.NotNil(t, m.SecondaryConfig())
	assert.Equal(t, "gemini", m.SecondaryConfig().Provider)
}
