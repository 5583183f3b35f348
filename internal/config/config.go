package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// RedisURL selects the Redis session store when set. Empty means
	// sessions live in process memory only.
	RedisURL   string
	SessionTTL time.Duration

	// QuestionCount is the size of the random question draw per session.
	QuestionCount int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	// HREmail is CC'd on result deliveries when the request carries no
	// explicit CC address.
	HREmail string

	// ChromeBin overrides the browser binary used for report snapshots.
	// Empty lets the launcher resolve one itself.
	ChromeBin string
	// ExportWidthPx is the reference viewport width the report is
	// rendered at before pagination.
	ExportWidthPx int

	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "pretty"),
		RedisURL:       getEnv("REDIS_URL", ""),
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_MINUTES", 120)) * time.Minute,
		QuestionCount:  getEnvInt("QUESTION_COUNT", 10),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		MailFrom:       getEnv("MAIL_FROM", "DISC Assessment <no-reply@localhost>"),
		HREmail:        getEnv("HR_EMAIL", ""),
		ChromeBin:      getEnv("CHROME_BIN", ""),
		ExportWidthPx:  getEnvInt("EXPORT_WIDTH_PX", 900),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
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
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
