package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]bool{
	"change_me_in_production":                    true,
	"replace_with_at_least_32_random_characters": true,
}

type Config struct {
	Port                string
	DBPath              string
	SecretKey           string
	Location            *time.Location
	LogLevel            string
	LogFormat           string
	CookieSecure        bool
	CORSAllowedOrigins  []string
	RateLimitFailClosed bool
	LoginRatePerMinute  int
	TokenTTL            time.Duration
	ShutdownTimeout     time.Duration
}

// Load reads .env when present; real environment variables win.
func Load() (*Config, []string, error) {
	warnings := make([]string, 0)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		warnings = append(warnings, fmt.Sprintf("read .env: %v", err))
	}

	secretKey, err := ResolveSecretKey()
	if err != nil {
		return nil, warnings, err
	}

	tzName := getEnv("TZ", "UTC")
	location, err := time.LoadLocation(tzName)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("invalid TZ %q, falling back to UTC", tzName))
		location = time.UTC
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		DBPath:              getEnv("DB_PATH", filepath.Join("data", "fitledger.db")),
		SecretKey:           secretKey,
		Location:            location,
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
		CookieSecure:        getBoolEnv("COOKIE_SECURE", false),
		CORSAllowedOrigins:  getListEnv("CORS_ALLOWED_ORIGINS"),
		RateLimitFailClosed: getBoolEnv("RATE_LIMIT_FAIL_CLOSED", false),
		LoginRatePerMinute:  getIntEnv("LOGIN_RATE_PER_MINUTE", 10),
		TokenTTL:            getDurationEnv("TOKEN_TTL", 7*24*time.Hour),
		ShutdownTimeout:     getDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
	}, warnings, nil
}

func ResolveSecretKey() (string, error) {
	secretKey := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secretKey == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if insecureSecretKeys[secretKey] {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secretKey) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secretKey, nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getBoolEnv(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func getListEnv(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	values := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
