package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Data     DataConfig     `yaml:"data"`
	Sessions SessionConfig  `yaml:"sessions"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
	Addr string `yaml:"-"` // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DataConfig describes where the candidate dataset comes from and how it is
// kept fresh.
type DataConfig struct {
	CSVPath         string        `yaml:"csv_path"`
	RefreshSchedule string        `yaml:"refresh_schedule"` // cron spec, empty disables
	Watch           bool          `yaml:"watch"`
	WatchDebounce   time.Duration `yaml:"watch_debounce"`
}

// SessionConfig holds explorer session settings.
type SessionConfig struct {
	IdleTTL  time.Duration `yaml:"idle_ttl"`
	TokenKey string        `yaml:"token_key"` // base64 fernet key, generated when empty
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// AuthConfig holds credentials for internal endpoints.
type AuthConfig struct {
	InternalAPIKey string `yaml:"internal_api_key"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Load reads configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and finally environment variables (including a .env file).
// Later sources win.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, err
		}
	}

	config.applyEnv()

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 5001,
			Host: "localhost",
		},
		Database: DatabaseConfig{
			Path: "./data/campaign_finance.db",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Data: DataConfig{
			CSVPath:       "./data/campaign_finance.csv",
			WatchDebounce: 500 * time.Millisecond,
		},
		Sessions: SessionConfig{
			IdleTTL:  30 * time.Minute,
			TokenTTL: 7 * 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvAsInt("SERVER_PORT", c.Server.Port)
	c.Server.Host = getEnv("SERVER_HOST", c.Server.Host)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.CORS.AllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins)
	c.Data.CSVPath = getEnv("DATA_CSV_PATH", c.Data.CSVPath)
	c.Data.RefreshSchedule = getEnv("DATA_REFRESH_SCHEDULE", c.Data.RefreshSchedule)
	c.Data.Watch = getEnvAsBool("DATA_WATCH", c.Data.Watch)
	c.Data.WatchDebounce = getEnvAsDuration("DATA_WATCH_DEBOUNCE", c.Data.WatchDebounce)
	c.Sessions.IdleTTL = getEnvAsDuration("SESSION_IDLE_TTL", c.Sessions.IdleTTL)
	c.Sessions.TokenKey = getEnv("SESSION_TOKEN_KEY", c.Sessions.TokenKey)
	c.Sessions.TokenTTL = getEnvAsDuration("SESSION_TOKEN_TTL", c.Sessions.TokenTTL)
	c.Auth.InternalAPIKey = getEnv("INTERNAL_API_KEY", c.Auth.InternalAPIKey)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Development = getEnvAsBool("LOG_DEVELOPMENT", c.Logging.Development)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port: %d", c.Server.Port))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database path is required"))
	}
	if c.Data.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.Data.RefreshSchedule); err != nil {
			errs = append(errs, fmt.Errorf("invalid refresh schedule %q: %w", c.Data.RefreshSchedule, err))
		}
	}
	if (c.Data.Watch || c.Data.RefreshSchedule != "") && c.Data.CSVPath == "" {
		errs = append(errs, errors.New("data refresh needs a CSV path"))
	}
	if c.Sessions.IdleTTL <= 0 {
		errs = append(errs, fmt.Errorf("invalid session idle TTL: %s", c.Sessions.IdleTTL))
	}

	return errors.Join(errs...)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
