package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBConn    string
	LogLevel  string
	JWTSecret string
	CBRURL    string

	// LookaheadMonths is the single projection window used by every caller
	LookaheadMonths int

	DigestEnabled  bool
	DigestSchedule string
	DigestDays     int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	lookahead, err := strconv.Atoi(getEnv("LOOKAHEAD_MONTHS", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOOKAHEAD_MONTHS: %w", err)
	}
	digestDays, err := strconv.Atoi(getEnv("DIGEST_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid DIGEST_DAYS: %w", err)
	}
	digestEnabled, err := strconv.ParseBool(getEnv("DIGEST_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid DIGEST_ENABLED: %w", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=finance sslmode=disable"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		CBRURL:          getEnv("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		LookaheadMonths: lookahead,
		DigestEnabled:   digestEnabled,
		DigestSchedule:  getEnv("DIGEST_SCHEDULE", "0 8 * * *"),
		DigestDays:      digestDays,
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", "noreply@finance-tracker.local"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.LookaheadMonths < 1 {
		return nil, fmt.Errorf("LOOKAHEAD_MONTHS must be at least 1, got %d", cfg.LookaheadMonths)
	}
	if cfg.DigestEnabled && cfg.DigestDays < 1 {
		return nil, fmt.Errorf("DIGEST_DAYS must be at least 1, got %d", cfg.DigestDays)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
