package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/Annany2002/docvault-backend/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Config holds application configuration values
type Config struct {
	AppEnv             string
	ServerPort         string
	DatabaseDir        string
	DatabaseFile       string
	CORSAllowedOrigins []string
	AuthRateLimit      int           // Requests allowed per client IP on /signup and /login
	AuthRateWindow     time.Duration // Sliding window for AuthRateLimit
	MaxUploadBytes     int64
	BcryptCost         int
}

// LoadConfig loads configuration from environment variables.
// It uses a .env file for local development if present (ignores it for production).
func LoadConfig() (*Config, error) {
	customLog.Println("Loading configuration from environment variables...")

	appEnv := getEnv("APP_ENV", "development")

	// Attempt to load .env file if in development environment (skip in production)
	if appEnv != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			customLog.Warnf("Warning: Error loading .env file: %v", err)
		}
	}

	port := strings.TrimPrefix(getEnv("SERVER_PORT", "8080"), ":")
	if port == "" {
		return nil, errors.New("SERVER_PORT must not be empty")
	}

	cfg := &Config{
		AppEnv:             appEnv,
		ServerPort:         port,
		DatabaseDir:        getEnv("DATABASE_DIRECTORY", "data"),
		DatabaseFile:       getEnv("DATABASE_FILE", "vault.db"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		AuthRateLimit:      getPositiveInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:     getDuration("AUTH_RATE_WINDOW", time.Minute),
		MaxUploadBytes:     int64(getPositiveInt("MAX_UPLOAD_MB", 10)) << 20,
		BcryptCost:         getPositiveInt("BCRYPT_COST", bcrypt.DefaultCost),
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		customLog.Warnf("BCRYPT_COST %d out of range [%d, %d]. Using default %d.", cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost, bcrypt.DefaultCost)
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	customLog.Printf("Configuration loaded successfully. Port: %s, DB: %s/%s, Env: %s", cfg.ServerPort, cfg.DatabaseDir, cfg.DatabaseFile, cfg.AppEnv)
	return cfg, nil
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getPositiveInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		customLog.Warnf("Invalid %s '%s'. Using default %d. Error: %v", key, raw, fallback, err)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		customLog.Warnf("Invalid %s '%s'. Using default %v. Error: %v", key, raw, fallback, err)
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
