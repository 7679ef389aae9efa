package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Ledger   LedgerConfig
	Recovery RecoveryConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	Timezone           string
	CORSAllowedOrigins []string
}

// LedgerConfig drives the hour bank jobs and thresholds.
type LedgerConfig struct {
	SettlementSpec  string
	FinalizeSpec    string
	HoursTolerance  float64
	DebtorThreshold float64
}

// RecoveryConfig bounds suggested recovery slots.
type RecoveryConfig struct {
	SlotFirst timecalc.Clock
	SlotLast  timecalc.Clock
}

// Load reads .env (required in development) and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if getEnv("APP_ENV", "development") == "development" {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
		slog.Info("No .env file found, using environment only")
	}
	return FromEnv()
}

// FromEnv builds and validates the configuration from environment variables.
func FromEnv() (*Config, error) {
	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "bancaore"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Timezone:           getEnv("APP_TIMEZONE", "Europe/Rome"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Ledger configuration
	tolerance, err := strconv.ParseFloat(getEnv("LEDGER_HOURS_TOLERANCE", "0.01"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_HOURS_TOLERANCE: %w", err)
	}
	threshold, err := strconv.ParseFloat(getEnv("LEDGER_DEBTOR_THRESHOLD", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_DEBTOR_THRESHOLD: %w", err)
	}

	config.Ledger = LedgerConfig{
		SettlementSpec:  getEnv("LEDGER_SETTLEMENT_SPEC", "*/5 * * * *"),
		FinalizeSpec:    getEnv("LEDGER_FINALIZE_SPEC", "10 0 * * *"),
		HoursTolerance:  tolerance,
		DebtorThreshold: threshold,
	}

	// Recovery configuration
	slotFirst, err := timecalc.ParseClock(getEnv("RECOVERY_SLOT_FIRST", "08:00"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECOVERY_SLOT_FIRST: %w", err)
	}
	slotLast, err := timecalc.ParseClock(getEnv("RECOVERY_SLOT_LAST", "18:00"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECOVERY_SLOT_LAST: %w", err)
	}

	config.Recovery = RecoveryConfig{
		SlotFirst: slotFirst,
		SlotLast:  slotLast,
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
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if err := cron.ValidateSpec(c.Ledger.SettlementSpec); err != nil {
		return fmt.Errorf("LEDGER_SETTLEMENT_SPEC: %w", err)
	}
	if err := cron.ValidateSpec(c.Ledger.FinalizeSpec); err != nil {
		return fmt.Errorf("LEDGER_FINALIZE_SPEC: %w", err)
	}
	if c.Ledger.HoursTolerance < 0 {
		return fmt.Errorf("LEDGER_HOURS_TOLERANCE must not be negative")
	}
	if c.Recovery.SlotLast < c.Recovery.SlotFirst {
		return fmt.Errorf("RECOVERY_SLOT_LAST must not be before RECOVERY_SLOT_FIRST")
	}
	return nil
}

// Location loads APP_TIMEZONE.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
