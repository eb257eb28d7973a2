package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected 10s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if cfg.WorkdayStartHour != 9 || cfg.WorkdayEndHour != 18 {
		t.Fatalf("expected 9..18 workday window, got %d..%d", cfg.WorkdayStartHour, cfg.WorkdayEndHour)
	}
	if len(cfg.CORSOrigins) == 0 {
		t.Fatalf("expected default CORS origins")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("CORS_ORIGINS", " http://a.local , ,http://b.local ")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Fatalf("expected :9999, got %q", cfg.HTTPAddr)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "http://a.local" || cfg.CORSOrigins[1] != "http://b.local" {
		t.Fatalf("expected trimmed origins, got %v", cfg.CORSOrigins)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("expected 3s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Fatalf("expected :7070 from PORT, got %q", cfg.HTTPAddr)
	}
}

func TestLoad_EmptyWorkdayWindow(t *testing.T) {
	t.Setenv("WORKDAY_START_HOUR", "18")
	t.Setenv("WORKDAY_END_HOUR", "9")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for inverted workday window")
	}
}
