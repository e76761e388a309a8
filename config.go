package main

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
)

type SMTPConfig struct {
	Host    string
	Port    string
	User    string
	Pass    string
	ToEmail string
}

type Config struct {
	Port string

	// Empty disables visitor analytics and the admin pages.
	DatabasePath string
	// Optional YAML file replacing the built-in catalog.
	CatalogPath string

	AllowedOrigins []string

	TypingDelay   time.Duration
	ThinkingDelay time.Duration
	GreetingDelay time.Duration

	SMTP SMTPConfig

	AdminUsername string
	AdminPassword string
}

// loadConfig reads the environment; .env is already loaded by godotenv/autoload.
func loadConfig(logger *log.Logger) Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabasePath:  os.Getenv("DATABASE_PATH"),
		CatalogPath:   os.Getenv("CATALOG_PATH"),
		TypingDelay:   getEnvDuration(logger, "TYPING_DELAY", 10*time.Millisecond),
		ThinkingDelay: getEnvDuration(logger, "THINKING_DELAY", time.Second),
		GreetingDelay: getEnvDuration(logger, "GREETING_DELAY", 500*time.Millisecond),
		SMTP: SMTPConfig{
			Host:    getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:    getEnv("SMTP_PORT", "587"),
			User:    os.Getenv("SMTP_USER"),
			Pass:    os.Getenv("SMTP_PASS"),
			ToEmail: os.Getenv("TO_EMAIL"),
		},
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}

	if _, set := os.LookupEnv("DATABASE_PATH"); !set {
		cfg.DatabasePath = "data/portfolio.db"
	}

	cfg.AllowedOrigins = lo.Compact(lo.Map(strings.Split(os.Getenv("ALLOWED_ORIGINS"), ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))

	if os.Getenv("ADMIN_USERNAME") == "" || os.Getenv("ADMIN_PASSWORD") == "" {
		logger.Warn("Using default admin credentials. Set ADMIN_USERNAME and ADMIN_PASSWORD.")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvDuration(logger *log.Logger, key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		logger.Warn("Ignoring invalid duration", "key", key, "value", v)
		return defaultValue
	}
	return d
}
