package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("HTTP_TIMEOUT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIBaseURL != "http://127.0.0.1:8000" {
		t.Errorf("expected default API_BASE_URL, got %s", cfg.APIBaseURL)
	}
	if cfg.SandboxPort != "8000" {
		t.Errorf("expected default sandbox port 8000, got %s", cfg.SandboxPort)
	}
	if cfg.HTTPTimeout != 0 {
		t.Errorf("expected no timeout by default, got %s", cfg.HTTPTimeout)
	}
	if cfg.ServiceName != "clinic-console" {
		t.Errorf("expected default service name, got %s", cfg.ServiceName)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://clinic.example.com/api/")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("DISPLAY_TIMEZONE", "America/Sao_Paulo")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIBaseURL != "https://clinic.example.com/api" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.HTTPTimeout)
	}
	if cfg.DisplayTimezone != "America/Sao_Paulo" {
		t.Errorf("expected timezone from env, got %s", cfg.DisplayTimezone)
	}
}

func TestLoad_RejectsRelativeURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "/agendamentos")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for relative API_BASE_URL")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{APIBaseURL: "http://localhost:8000", LogLevel: "debug"}, false},
		{"ftp scheme", Config{APIBaseURL: "ftp://localhost"}, true},
		{"bad level", Config{APIBaseURL: "http://localhost", LogLevel: "loud"}, true},
		{"negative timeout", Config{APIBaseURL: "http://localhost", HTTPTimeout: -time.Second}, true},
		{"unknown zone", Config{APIBaseURL: "http://localhost", DisplayTimezone: "Nowhere/City"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Level(t *testing.T) {
	c := &Config{LogLevel: "warn"}
	if c.Level() != zerolog.WarnLevel {
		t.Errorf("expected warn, got %s", c.Level())
	}
	c.LogLevel = ""
	if c.Level() != zerolog.InfoLevel {
		t.Errorf("expected info fallback, got %s", c.Level())
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}
