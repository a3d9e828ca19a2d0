package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Supported interface languages.
const (
	LangEnglish = "en"
	LangFrench  = "fr"
	LangArabic  = "ar"
)

type Config struct {
	// Backend
	APIBaseURL     string
	RequestTimeout time.Duration

	// Credentials
	CredentialsFile string
	CSRFToken       string

	// Client behaviour
	Language  string
	RateLimit float64
	RateBurst int
	Debug     bool
}

// Load reads configuration from environment variables, applying defaults that
// match the development backend.
func Load() Config {
	return Config{
		APIBaseURL:      strings.TrimRight(getEnv("UNIPORTAL_API_URL", "http://localhost:5000/api"), "/"),
		RequestTimeout:  getEnvDuration("UNIPORTAL_TIMEOUT", 10*time.Second),
		CredentialsFile: getEnv("UNIPORTAL_CREDENTIALS_FILE", defaultCredentialsFile()),
		CSRFToken:       getEnv("UNIPORTAL_CSRF_TOKEN", ""),
		Language:        normalizeLanguage(getEnv("UNIPORTAL_LANG", LangEnglish)),
		RateLimit:       getEnvFloat("UNIPORTAL_RATE_LIMIT", 20),
		RateBurst:       getEnvInt("UNIPORTAL_RATE_BURST", 10),
		Debug:           strings.ToLower(getEnv("UNIPORTAL_DEBUG", "false")) == "true",
	}
}

func defaultCredentialsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".uniportal-credentials.json")
	}
	return filepath.Join(dir, "uniportal", "credentials.json")
}

func normalizeLanguage(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case LangArabic:
		return LangArabic
	case LangFrench:
		return LangFrench
	default:
		return LangEnglish
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}
