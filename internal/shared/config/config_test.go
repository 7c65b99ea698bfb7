package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.HTTPAddr != ":9000" {
		t.Errorf("expected default addr :9000, got %s", cfg.HTTPAddr)
	}
	if cfg.ClosingInterval != 10*time.Second {
		t.Errorf("expected default closing interval 10s, got %s", cfg.ClosingInterval)
	}
	if cfg.NotifierTimeout != 5*time.Second {
		t.Errorf("expected default notifier timeout 5s, got %s", cfg.NotifierTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("CLOSING_INTERVAL", "30s")
	t.Setenv("NOTIFIER_URL", "https://hooks.test.dev/winner")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected addr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.ClosingInterval != 30*time.Second {
		t.Errorf("expected closing interval 30s, got %s", cfg.ClosingInterval)
	}
	if cfg.NotifierURL != "https://hooks.test.dev/winner" {
		t.Errorf("unexpected notifier URL %s", cfg.NotifierURL)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("CLOSING_INTERVAL", "not-a-duration")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid CLOSING_INTERVAL")
	}
}

func TestLoad_NonPositiveInterval(t *testing.T) {
	t.Setenv("CLOSING_INTERVAL", "0s")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero CLOSING_INTERVAL")
	}
}
