package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	CORS    CORSConfig
	Upload  UploadConfig
	Model   ModelConfig
	Render  RenderConfig
	Extract ExtractConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig holds upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// ModelProviderConfig holds settings for a single vision model provider.
type ModelProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ModelConfig holds vision model settings with primary/secondary fallback.
type ModelConfig struct {
	Primary   ModelProviderConfig `mapstructure:"primary"`
	Secondary ModelProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (m *ModelConfig) SecondaryConfig() *ModelProviderConfig {
	if m.Secondary.Provider != "" {
		return &m.Secondary
	}
	return nil
}

// RenderConfig holds PDF page rendering settings.
type RenderConfig struct {
	DPI      int `mapstructure:"dpi"`
	MaxPages int `mapstructure:"max_pages"`
}

// ExtractConfig holds extraction pipeline settings.
type ExtractConfig struct {
	// MaxRetries bounds repair attempts after the initial one, so the
	// pipeline issues up to MaxRetries+1 model calls per document.
	MaxRetries           int  `mapstructure:"max_retries"`
	MergeMultipageTables bool `mapstructure:"merge_multipage_tables"`
}

// Load reads configuration from environment variables with the CARGODOCS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CARGODOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)

	// Model defaults
	v.SetDefault("model.primary.provider", "openai")
	v.SetDefault("model.primary.api_key", "")
	v.SetDefault("model.primary.default_model", "gpt-4o")
	v.SetDefault("model.primary.timeout_secs", 120)
	v.SetDefault("model.secondary.provider", "")
	v.SetDefault("model.secondary.api_key", "")
	v.SetDefault("model.secondary.default_model", "")
	v.SetDefault("model.secondary.timeout_secs", 120)

	// Render defaults
	v.SetDefault("render.dpi", 150)
	v.SetDefault("render.max_pages", 5)

	// Extract defaults
	v.SetDefault("extract.max_retries", 2)
	v.SetDefault("extract.merge_multipage_tables", false)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "CARGODOCS_SERVER_PORT",
		"server.read_timeout":            "CARGODOCS_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "CARGODOCS_SERVER_WRITE_TIMEOUT",
		"server.environment":             "CARGODOCS_SERVER_ENVIRONMENT",
		"log.level":                      "CARGODOCS_LOG_LEVEL",
		"log.format":                     "CARGODOCS_LOG_FORMAT",
		"cors.allowed_origins":           "CARGODOCS_CORS_ALLOWED_ORIGINS",
		"upload.max_file_size_mb":        "CARGODOCS_UPLOAD_MAX_FILE_SIZE_MB",
		"model.primary.provider":         "CARGODOCS_MODEL_PRIMARY_PROVIDER",
		"model.primary.api_key":          "CARGODOCS_MODEL_PRIMARY_API_KEY",
		"model.primary.default_model":    "CARGODOCS_MODEL_PRIMARY_DEFAULT_MODEL",
		"model.primary.timeout_secs":     "CARGODOCS_MODEL_PRIMARY_TIMEOUT_SECS",
		"model.secondary.provider":       "CARGODOCS_MODEL_SECONDARY_PROVIDER",
		"model.secondary.api_key":        "CARGODOCS_MODEL_SECONDARY_API_KEY",
		"model.secondary.default_model":  "CARGODOCS_MODEL_SECONDARY_DEFAULT_MODEL",
		"model.secondary.timeout_secs":   "CARGODOCS_MODEL_SECONDARY_TIMEOUT_SECS",
		"render.dpi":                     "CARGODOCS_RENDER_DPI",
		"render.max_pages":               "CARGODOCS_RENDER_MAX_PAGES",
		"extract.max_retries":            "CARGODOCS_EXTRACT_MAX_RETRIES",
		"extract.merge_multipage_tables": "CARGODOCS_EXTRACT_MERGE_MULTIPAGE_TABLES",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CARGODOCS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CARGODOCS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	cfg.Model = ModelConfig{
		Primary: ModelProviderConfig{
			Provider:     v.GetString("model.primary.provider"),
			APIKey:       v.GetString("model.primary.api_key"),
			DefaultModel: v.GetString("model.primary.default_model"),
			TimeoutSecs:  v.GetInt("model.primary.timeout_secs"),
		},
		Secondary: ModelProviderConfig{
			Provider:     v.GetString("model.secondary.provider"),
			APIKey:       v.GetString("model.secondary.api_key"),
			DefaultModel: v.GetString("model.secondary.default_model"),
			TimeoutSecs:  v.GetInt("model.secondary.timeout_secs"),
		},
	}

	cfg.Render = RenderConfig{
		DPI:      v.GetInt("render.dpi"),
		MaxPages: v.GetInt("render.max_pages"),
	}

	cfg.Extract = ExtractConfig{
		MaxRetries:           v.GetInt("extract.max_retries"),
		MergeMultipageTables: v.GetBool("extract.merge_multipage_tables"),
	}

	return cfg, nil
}
