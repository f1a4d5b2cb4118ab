package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Sync     SyncConfig
	Holiday  HolidayConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration. Access tokens are issued by the auth
// service; only the stream token is issued here.
type JWTConfig struct {
	Secret         string
	StreamTokenTTL time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
	Timezone    string
}

// SyncConfig tunes the per-employee calendar refresh loops.
type SyncConfig struct {
	Interval          time.Duration
	IdleTimeout       time.Duration
	EvictInterval     time.Duration
	PopoverMinDisplay time.Duration
}

type HolidayConfig struct {
	MinYear int
	MaxYear int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "cmlabs-hris"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		Timezone:    getEnv("APP_TIMEZONE", "Asia/Tokyo"),
	}

	// JWT configuration
	streamTTL, err := getEnvDuration("JWT_STREAM_TOKEN_TTL", "5m")
	if err != nil {
		return nil, err
	}
	config.JWT = JWTConfig{
		Secret:         getEnv("JWT_SECRET_KEY", ""),
		StreamTokenTTL: streamTTL,
	}

	// Sync configuration
	if config.Sync.Interval, err = getEnvDuration("SYNC_INTERVAL", "1s"); err != nil {
		return nil, err
	}
	if config.Sync.IdleTimeout, err = getEnvDuration("SYNC_IDLE_TIMEOUT", "10m"); err != nil {
		return nil, err
	}
	if config.Sync.EvictInterval, err = getEnvDuration("SYNC_EVICT_INTERVAL", "1m"); err != nil {
		return nil, err
	}
	if config.Sync.PopoverMinDisplay, err = getEnvDuration("POPOVER_MIN_DISPLAY", "5s"); err != nil {
		return nil, err
	}

	// Holiday calendar range
	if config.Holiday.MinYear, err = strconv.Atoi(getEnv("HOLIDAY_MIN_YEAR", "2020")); err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_MIN_YEAR: %w", err)
	}
	if config.Holiday.MaxYear, err = strconv.Atoi(getEnv("HOLIDAY_MAX_YEAR", "2035")); err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_MAX_YEAR: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Sync.Interval <= 0 {
		return fmt.Errorf("SYNC_INTERVAL must be positive")
	}
	if c.Sync.IdleTimeout < c.Sync.Interval {
		return fmt.Errorf("SYNC_IDLE_TIMEOUT must not be shorter than SYNC_INTERVAL")
	}
	if c.Sync.EvictInterval <= 0 {
		return fmt.Errorf("SYNC_EVICT_INTERVAL must be positive")
	}
	if c.Sync.PopoverMinDisplay < 0 {
		return fmt.Errorf("POPOVER_MIN_DISPLAY must not be negative")
	}
	if c.Holiday.MinYear > c.Holiday.MaxYear {
		return fmt.Errorf("HOLIDAY_MIN_YEAR must not be after HOLIDAY_MAX_YEAR")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location returns the zone used to decide "today" and to place punches on
// the wall clock.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// AllowedOrigins splits FRONTEND_URL on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.App.FrontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
