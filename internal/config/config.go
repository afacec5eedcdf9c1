package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         string
	Env          string
	DatabaseDSN  string
	AuthSecret   string
	Origin       string
	SessionTTL   time.Duration
	MagicLinkTTL time.Duration
	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPPassword string
}

func Load() Config {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		DatabaseDSN:  getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/fitizen?parseTime=true"),
		AuthSecret:   getEnv("AUTH_COOKIE_SECRET", "dev-secret-change-in-production"),
		Origin:       getEnv("ORIGIN", "http://localhost:8080"),
		SessionTTL:   24 * time.Hour,
		MagicLinkTTL: 10 * time.Minute,
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
	}

	if cfg.Env == "production" && cfg.AuthSecret == "dev-secret-change-in-production" {
		slog.Error("AUTH_COOKIE_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer env value, using fallback", "key", key, "value", v)
		return fallback
	}
	return n
}
