package config

import (
	"os"
	"strconv"
	"time"

	"prism/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig `validate:"required"`
	Server   ServerConfig   `validate:"required"`
	Webhook  WebhookConfig  `validate:"required"`
	Upload   UploadConfig
	Export   ExportConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string `validate:"required"`
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
}

// ServerConfig holds web server settings. The dashboard and the webhook
// receiver listen on separate ports.
type ServerConfig struct {
	Port        string `validate:"required"`
	WebhookPort string `validate:"required"`
	GinMode     string
}

// WebhookConfig holds webhook receiver settings
type WebhookConfig struct {
	Secret string `validate:"required"`
}

// UploadConfig holds upload limits for the export processor
type UploadConfig struct {
	MaxBytes int64
}

// ExportConfig holds export processing settings
type ExportConfig struct {
	MaxConcurrent int
	ReferenceFile string
}

// DefaultWebhookSecret authenticates webhook posts when WEBHOOK_SECRET is
// not set. Deployments should override it.
const DefaultWebhookSecret = "prism-webhook-2026"

// DefaultMaxUploadBytes caps uploaded export size at 50MB
const DefaultMaxUploadBytes int64 = 50 << 20

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	// Load database configuration
	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}
	config.Database = *dbConfig

	// Load server configuration
	serverConfig := loadServerConfig()
	config.Server = *serverConfig

	// Load webhook configuration
	webhookConfig := loadWebhookConfig()
	config.Webhook = *webhookConfig

	// Load upload configuration
	uploadConfig := loadUploadConfig()
	config.Upload = *uploadConfig

	// Load export configuration
	exportConfig := loadExportConfig()
	config.Export = *exportConfig

	// Validate required fields
	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	return &DatabaseConfig{
		URL:      url,
		User:     getEnvOrDefault("DB_USER", ""),
		Password: getEnvOrDefault("DB_PASS", ""),
		Name:     getEnvOrDefault("DB_NAME", ""),
		Host:     getEnvOrDefault("DB_HOST", ""),
		Port:     getEnvIntOrDefault("DB_PORT", 5432),
		SSLMode:  getEnvOrDefault("SSL_MODE", "disable"),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:        getEnvOrDefault("PORT", "8080"),
		WebhookPort: getEnvOrDefault("WEBHOOK_PORT", "5000"),
		GinMode:     getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadWebhookConfig() *WebhookConfig {
	return &WebhookConfig{
		Secret: getEnvOrDefault("WEBHOOK_SECRET", DefaultWebhookSecret),
	}
}

func loadUploadConfig() *UploadConfig {
	return &UploadConfig{
		MaxBytes: getEnvInt64OrDefault("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
	}
}

func loadExportConfig() *ExportConfig {
	return &ExportConfig{
		MaxConcurrent: getEnvIntOrDefault("EXPORT_MAX_CONCURRENT", 4),
		ReferenceFile: getEnvOrDefault("REFERENCE_FILE", ""),
	}
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("database URL is required")
	}
	if config.Server.Port == config.Server.WebhookPort {
		return errors.ConfigInvalid("dashboard and webhook ports must differ")
	}
	if config.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("max upload size must be positive")
	}
	if config.Export.MaxConcurrent <= 0 {
		return errors.ConfigInvalid("export concurrency must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// Duration parsing helper (for future use)
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
