package config

import (
	"fmt"
	"log"
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
	LoginID  LoginIDConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

// LoginIDConfig controls how login identifiers are allocated per role.
type LoginIDConfig struct {
	Prefixes       map[string]string
	FallbackPrefix string
	Width          int
	MaxAttempts    int
}

type CronConfig struct {
	TokenPurgeInterval   time.Duration
	AbsenceSweepInterval time.Duration
}

const defaultLoginIDPrefixes = "admin:ADM,hr:HR,manager:MGR,employee:EMP"

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "office"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "UTC"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Login ID allocation
	prefixes, err := ParsePrefixes(getEnv("LOGIN_ID_PREFIXES", defaultLoginIDPrefixes))
	if err != nil {
		return nil, err
	}
	width, err := getEnvInt("LOGIN_ID_WIDTH", 3)
	if err != nil {
		return nil, err
	}
	attempts, err := getEnvInt("LOGIN_ID_MAX_ATTEMPTS", 5)
	if err != nil {
		return nil, err
	}

	config.LoginID = LoginIDConfig{
		Prefixes:       prefixes,
		FallbackPrefix: getEnv("LOGIN_ID_FALLBACK_PREFIX", "USR"),
		Width:          width,
		MaxAttempts:    attempts,
	}

	// Scheduled jobs
	purgeInterval, err := getEnvDuration("CRON_TOKEN_PURGE_INTERVAL", 6*time.Hour)
	if err != nil {
		return nil, err
	}
	absenceInterval, err := getEnvDuration("CRON_ABSENCE_SWEEP_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}

	config.Cron = CronConfig{
		TokenPurgeInterval:   purgeInterval,
		AbsenceSweepInterval: absenceInterval,
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
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.ParseDuration(c.JWT.RefreshExpiration); err != nil {
		return fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if len(c.LoginID.Prefixes) == 0 {
		return fmt.Errorf("LOGIN_ID_PREFIXES must define at least one role")
	}
	if strings.TrimSpace(c.LoginID.FallbackPrefix) == "" {
		return fmt.Errorf("LOGIN_ID_FALLBACK_PREFIX is required")
	}
	if c.LoginID.Width < 1 {
		return fmt.Errorf("LOGIN_ID_WIDTH must be at least 1")
	}
	if c.LoginID.MaxAttempts < 1 {
		return fmt.Errorf("LOGIN_ID_MAX_ATTEMPTS must be at least 1")
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

// Location returns the configured business timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParsePrefixes parses "role:PREFIX,role:PREFIX" into a lookup table keyed by lower-case role.
func ParsePrefixes(raw string) (map[string]string, error) {
	result := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		role, prefix, ok := strings.Cut(pair, ":")
		role = strings.ToLower(strings.TrimSpace(role))
		prefix = strings.ToUpper(strings.TrimSpace(prefix))
		if !ok || role == "" || prefix == "" {
			return nil, fmt.Errorf("invalid LOGIN_ID_PREFIXES entry %q: expected role:PREFIX", pair)
		}
		result[role] = prefix
	}
	return result, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
