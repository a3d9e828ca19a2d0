package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.APIBaseURL != "http://localhost:5000/api" {
		t.Fatalf("unexpected base url %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.RequestTimeout)
	}
	if cfg.Language != LangEnglish {
		t.Fatalf("unexpected language %q", cfg.Language)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("UNIPORTAL_API_URL", "https://api.univ.example/api/")
	t.Setenv("UNIPORTAL_TIMEOUT", "3s")
	t.Setenv("UNIPORTAL_LANG", "AR")
	t.Setenv("UNIPORTAL_RATE_BURST", "2")

	cfg := Load()
	if cfg.APIBaseURL != "https://api.univ.example/api" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.RequestTimeout)
	}
	if cfg.Language != LangArabic {
		t.Fatalf("unexpected language %q", cfg.Language)
	}
	if cfg.RateBurst != 2 {
		t.Fatalf("unexpected burst %d", cfg.RateBurst)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("UNIPORTAL_TIMEOUT", "soon")
	t.Setenv("UNIPORTAL_LANG", "de")
	t.Setenv("UNIPORTAL_RATE_LIMIT", "-4")

	cfg := Load()
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("invalid duration should fall back, got %s", cfg.RequestTimeout)
	}
	if cfg.Language != LangEnglish {
		t.Fatalf("unsupported language should fall back, got %q", cfg.Language)
	}
	if cfg.RateLimit != 20 {
		t.Fatalf("negative rate should fall back, got %v", cfg.RateLimit)
	}
}
