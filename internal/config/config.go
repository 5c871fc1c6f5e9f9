package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	CORS   CORSConfig
	Gemini GeminiConfig
	Upload UploadConfig
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

// GeminiConfig holds settings for the hosted Gemini model.
type GeminiConfig struct {
	// APIKey is the fallback credential used when a request does not
	// carry its own key.
	APIKey          string `mapstructure:"api_key"`
	Model           string `mapstructure:"default_model"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
	PollIntervalMS  int    `mapstructure:"poll_interval_ms"`
	PollTimeoutSecs int    `mapstructure:"poll_timeout_secs"`
}

// PollInterval returns the readiness poll interval as a duration.
func (g *GeminiConfig) PollInterval() time.Duration {
	if g.PollIntervalMS <= 0 {
		return time.Second
	}
	return time.Duration(g.PollIntervalMS) * time.Millisecond
}

// PollTimeout returns the readiness poll deadline as a duration.
func (g *GeminiConfig) PollTimeout() time.Duration {
	if g.PollTimeoutSecs <= 0 {
		return 120 * time.Second
	}
	return time.Duration(g.PollTimeoutSecs) * time.Second
}

// UploadConfig holds upload intake limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// Load reads configuration from environment variables with the CALLSIGHT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CALLSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001,http://127.0.0.1:3001")

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.default_model", "gemini-2.5-flash")
	v.SetDefault("gemini.timeout_secs", 120)
	v.SetDefault("gemini.poll_interval_ms", 1000)
	v.SetDefault("gemini.poll_timeout_secs", 120)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 50)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "CALLSIGHT_SERVER_PORT",
		"server.read_timeout":      "CALLSIGHT_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "CALLSIGHT_SERVER_WRITE_TIMEOUT",
		"server.environment":       "CALLSIGHT_SERVER_ENVIRONMENT",
		"log.level":                "CALLSIGHT_LOG_LEVEL",
		"log.format":               "CALLSIGHT_LOG_FORMAT",
		"cors.allowed_origins":     "CALLSIGHT_CORS_ALLOWED_ORIGINS",
		"gemini.api_key":           "CALLSIGHT_GEMINI_API_KEY",
		"gemini.default_model":     "CALLSIGHT_GEMINI_DEFAULT_MODEL",
		"gemini.timeout_secs":      "CALLSIGHT_GEMINI_TIMEOUT_SECS",
		"gemini.poll_interval_ms":  "CALLSIGHT_GEMINI_POLL_INTERVAL_MS",
		"gemini.poll_timeout_secs": "CALLSIGHT_GEMINI_POLL_TIMEOUT_SECS",
		"upload.max_file_size_mb":  "CALLSIGHT_UPLOAD_MAX_FILE_SIZE_MB",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CALLSIGHT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CALLSIGHT_SERVER_PORT") == "" {
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

	cfg.Gemini = GeminiConfig{
		APIKey:          v.GetString("gemini.api_key"),
		Model:           v.GetString("gemini.default_model"),
		TimeoutSecs:     v.GetInt("gemini.timeout_secs"),
		PollIntervalMS:  v.GetInt("gemini.poll_interval_ms"),
		PollTimeoutSecs: v.GetInt("gemini.poll_timeout_secs"),
	}

	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	return cfg, nil
}
