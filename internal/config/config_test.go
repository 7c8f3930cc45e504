package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Fatalf("expected listen addr derived from port, got %q", cfg.Server.ListenAddr)
	}
	if cfg.Upload.URLPath != "/uploads" {
		t.Fatalf("unexpected upload url path %q", cfg.Upload.URLPath)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected token ttl %s", cfg.Auth.TokenTTL)
	}
	if cfg.HasBootstrapAdmin() {
		t.Fatal("expected no bootstrap admin without credentials")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SITECMS_SERVER_PORT", "9090")
	t.Setenv("SITECMS_SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SITECMS_AUTH_TOKEN_TTL", "2h")
	t.Setenv("SITECMS_AUTH_COOKIE_SECURE", "true")
	t.Setenv("SITECMS_UPLOAD_URL_PATH", "media/")
	t.Setenv("SITECMS_ADMIN_EMAIL", "admin@example.com")
	t.Setenv("SITECMS_ADMIN_PASSWORD", "supersecret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.ListenAddr != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.Server.ListenAddr)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Fatalf("expected 2h ttl, got %s", cfg.Auth.TokenTTL)
	}
	if !cfg.Auth.CookieSecure {
		t.Fatal("expected secure cookies")
	}
	if cfg.Upload.URLPath != "/media" {
		t.Fatalf("expected normalised url path, got %q", cfg.Upload.URLPath)
	}
	if !cfg.HasBootstrapAdmin() {
		t.Fatal("expected bootstrap admin to be configured")
	}
	if cfg.Database.Path != "sitecms.db" {
		t.Fatalf("expected untouched default database path, got %q", cfg.Database.Path)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("SITECMS_LOGGER_LEVEL", "verbose")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for unknown log level")
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"SITECMS_SERVER_PORT":        "server.port",
		"SITECMS_AUTH_JWT_SECRET":    "auth.jwt_secret",
		"SITECMS_LOGGER_MAX_SIZE_MB": "logger.max_size_mb",
	}
	for raw, want := range tests {
		if got := envKey(raw); got != want {
			t.Fatalf("envKey(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestDefaultSecretsReportsUnchangedValues(t *testing.T) {
	cfg := Default()
	got := cfg.DefaultSecrets()
	if len(got) != 2 || got[0] != "SITECMS_AUTH_JWT_SECRET" || got[1] != "SITECMS_AUTH_SESSION_SECRET" {
		t.Fatalf("unexpected default secrets %v", got)
	}

	t.Setenv("SITECMS_AUTH_JWT_SECRET", "a-production-jwt-secret")
	t.Setenv("SITECMS_AUTH_SESSION_SECRET", "a-production-session-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := cfg.DefaultSecrets(); len(got) != 0 {
		t.Fatalf("expected no default secrets, got %v", got)
	}
}
