// Package config reads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string
	DatabaseURL   string

	// Salon identity and scheduling
	SalonName         string
	SalonTimezone     string
	DefaultWindowDays int

	// Admin gate: shared secret compared against X-Admin-Token or a bearer token.
	AdminToken string

	// Hair try-on (Gemini image editing)
	GoogleAPIKey    string
	GeminiModel     string
	TryOnBodyLimit  int64
	TryOnRateLimit  int
	TryOnRateWindow time.Duration

	// Public endpoint rate limiting (per IP)
	PublicRatePerSec float64
	PublicRateBurst  int

	// Redis (try-on rate limiter); empty addr disables it
	RedisAddr     string
	RedisPassword string

	// AWS (S3 preview store, SES email)
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
	PreviewBucket       string
	PreviewBaseURL      string

	// Email notifications for new bookings
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	OwnerEmail        string

	CORSAllowedOrigins string
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present (local development).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		SalonName:         getEnv("SALON_NAME", "TayloredRoots Salon"),
		SalonTimezone:     getEnv("SALON_TIMEZONE", "America/Chicago"),
		DefaultWindowDays: getEnvAsInt("DEFAULT_WINDOW_DAYS", 7),

		AdminToken: getEnv("ADMIN_TOKEN", getEnv("ADMIN_KEY", "")),

		GoogleAPIKey:    getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-3-pro-image-preview"),
		TryOnBodyLimit:  int64(getEnvAsInt("TRYON_BODY_LIMIT_BYTES", 8<<20)),
		TryOnRateLimit:  getEnvAsInt("TRYON_RATE_LIMIT", 10),
		TryOnRateWindow: getEnvAsDuration("TRYON_RATE_WINDOW", time.Minute),

		PublicRatePerSec: getEnvAsFloat("PUBLIC_RATE_PER_SEC", 5),
		PublicRateBurst:  getEnvAsInt("PUBLIC_RATE_BURST", 10),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
		PreviewBucket:       getEnv("PREVIEW_BUCKET", ""),
		PreviewBaseURL:      getEnv("PREVIEW_BASE_URL", ""),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "TayloredRoots Salon"),
		OwnerEmail:        getEnv("OWNER_EMAIL", ""),

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
