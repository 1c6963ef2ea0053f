package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// devJWTSecret signs tokens only when APP_ENV=development and JWT_SECRET is unset.
const devJWTSecret = "trackzen-dev-secret"

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string

	DatabaseURL string
	RedisURL    string

	JWTSecret string
	JWTTTL    time.Duration

	Location *time.Location

	LeaderboardConcurrency int
	LeaderboardUpdateLimit int

	ReminderCron string

	LoginMaxAttempts int64
	LoginWindow      time.Duration

	AdminEmail    string
	AdminPassword string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		RedisURL:       os.Getenv("REDIS_URL"),
		ReminderCron:   getEnv("REMINDER_CRON", "0 17 * * 1-5"),
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@trackzen.io"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin12345"),
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET is required when APP_ENV=%s", cfg.AppEnv)
		}
		cfg.JWTSecret = devJWTSecret
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			os.Getenv("DB_PASS"),
			getEnv("DB_NAME", "trackzen"),
			getEnv("DB_PORT", "5432"),
		)
	}

	var err error

	ttlMinutes, err := getInt("JWT_TTL_MINUTES", 60*24)
	if err != nil {
		return nil, err
	}
	cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute

	cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	if cfg.LeaderboardConcurrency, err = getInt("LEADERBOARD_CONCURRENCY", 8); err != nil {
		return nil, err
	}
	if cfg.LeaderboardUpdateLimit, err = getInt("LEADERBOARD_UPDATE_LIMIT", 120); err != nil {
		return nil, err
	}

	attempts, err := getInt("RATE_LIMIT_LOGIN", 5)
	if err != nil {
		return nil, err
	}
	cfg.LoginMaxAttempts = int64(attempts)

	cfg.LoginWindow, err = time.ParseDuration(getEnv("RATE_LIMIT_LOGIN_WINDOW", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_LOGIN_WINDOW: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
