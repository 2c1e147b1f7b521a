package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/pep299/company-news-api/internal/deepsearch"
	"github.com/pep299/company-news-api/internal/naver"
	"github.com/pep299/company-news-api/internal/telemetry"
)

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port       string `json:"port"`
	Host       string `json:"host"`
	AppName    string `json:"app_name"`
	AppVersion string `json:"app_version"`

	// Naver news API settings
	NaverClientID     string `json:"-"` // Don't expose in JSON
	NaverClientSecret string `json:"-"`
	NaverNewsAPIURL   string `json:"naver_news_api_url"`

	// DeepSearch news API settings
	DeepSearchAPIKey     string `json:"-"`
	DeepSearchNewsAPIURL string `json:"deepsearch_news_api_url"`

	UpstreamTimeoutSeconds int      `json:"upstream_timeout_seconds"`
	CORSOrigins            []string `json:"cors_origins"`

	// Tracing: "none" or "stdout"
	TraceExporter string `json:"trace_exporter"`

	// Watchlist digest settings
	Watchlist         []string `json:"watchlist"`
	WatchlistSchedule string   `json:"watchlist_schedule"`
	SlackWebhookURL   string   `json:"-"`
	SlackChannel      string   `json:"slack_channel"`
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:                   getEnvOrDefault("PORT", "8000"),
		Host:                   getEnvOrDefault("HOST", "0.0.0.0"),
		AppName:                getEnvOrDefault("APP_NAME", "Company News API"),
		AppVersion:             getEnvOrDefault("APP_VERSION", "1.0.0"),
		NaverClientID:          getEnvOrDefault("NAVER_CLIENT_ID", ""),
		NaverClientSecret:      getEnvOrDefault("NAVER_CLIENT_SECRET", ""),
		NaverNewsAPIURL:        getEnvOrDefault("NAVER_NEWS_API_URL", naver.DefaultAPIURL),
		DeepSearchAPIKey:       getEnvOrDefault("DEEPSEARCH_API_KEY", ""),
		DeepSearchNewsAPIURL:   getEnvOrDefault("DEEPSEARCH_NEWS_API_URL", deepsearch.DefaultAPIURL),
		UpstreamTimeoutSeconds: getEnvOrDefaultInt("UPSTREAM_TIMEOUT_SECONDS", 5),
		CORSOrigins:            parseStringSlice(getEnvOrDefault("CORS_ORIGINS", "*")),
		TraceExporter:          getEnvOrDefault("OTEL_TRACES_EXPORTER", telemetry.ExporterNone),
		Watchlist:              parseStringSlice(getEnvOrDefault("WATCHLIST", "")),
		WatchlistSchedule:      getEnvOrDefault("WATCHLIST_SCHEDULE", "0 8 * * *"),
		SlackWebhookURL:        getEnvOrDefault("SLACK_WEBHOOK_URL", ""),
		SlackChannel:           getEnvOrDefault("SLACK_CHANNEL", "#company-news"),
	}

	return config, config.validate()
}

// validate checks structural settings. Provider credentials are optional here
// and checked by each client when it is called.
func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return &ConfigError{Field: "PORT", Message: "port must be numeric"}
	}
	if c.NaverNewsAPIURL == "" {
		return &ConfigError{Field: "NAVER_NEWS_API_URL", Message: "Naver news API URL is required"}
	}
	if c.DeepSearchNewsAPIURL == "" {
		return &ConfigError{Field: "DEEPSEARCH_NEWS_API_URL", Message: "DeepSearch news API URL is required"}
	}
	if c.UpstreamTimeoutSeconds <= 0 {
		return &ConfigError{Field: "UPSTREAM_TIMEOUT_SECONDS", Message: "timeout must be greater than 0"}
	}
	if c.TraceExporter != telemetry.ExporterNone && c.TraceExporter != telemetry.ExporterStdout {
		return &ConfigError{Field: "OTEL_TRACES_EXPORTER", Message: "trace exporter must be none or stdout"}
	}
	if _, err := cron.ParseStandard(c.WatchlistSchedule); err != nil {
		return &ConfigError{Field: "WATCHLIST_SCHEDULE", Message: "invalid cron expression: " + err.Error()}
	}
	return nil
}

// UpstreamTimeout returns the per-request timeout for provider calls
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

// NaverConfig builds the Naver client settings
func (c *Config) NaverConfig() naver.Config {
	return naver.Config{
		BaseURL:      c.NaverNewsAPIURL,
		ClientID:     c.NaverClientID,
		ClientSecret: c.NaverClientSecret,
		Timeout:      c.UpstreamTimeout(),
	}
}

// DeepSearchConfig builds the DeepSearch client settings
func (c *Config) DeepSearchConfig() deepsearch.Config {
	return deepsearch.Config{
		BaseURL: c.DeepSearchNewsAPIURL,
		APIKey:  c.DeepSearchAPIKey,
		Timeout: c.UpstreamTimeout(),
	}
}

// TelemetryConfig builds the tracing settings
func (c *Config) TelemetryConfig() telemetry.Config {
	return telemetry.Config{
		ServiceName:    c.AppName,
		ServiceVersion: c.AppVersion,
		Exporter:       c.TraceExporter,
	}
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// parseStringSlice parses comma-separated string into slice
func parseStringSlice(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
