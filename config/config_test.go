package config

import (
	"testing"
	"time"
)

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, key := range []string{
		"JWT_SECRET_KEY", "SERVER_PORT", "DOCUMENT_STORE", "DATABASE_URL", "SQLITE_PATH",
		"BATCH_SIZE", "ADMIN_PASSWORD", "SESSION_TTL", "CORS_ALLOWED_ORIGINS",
		"R2_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_SECRET_ACCESS_KEY", "R2_BUCKET_NAME", "R2_PUBLIC_BASE_URL",
		"DISCORD_WEBHOOK_ID", "DISCORD_WEBHOOK_TOKEN",
	} {
		t.Setenv(key, env[key])
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, map[string]string{"JWT_SECRET_KEY": "secret"})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != 8080 || cfg.DocumentStore != StoreSQLite || cfg.BatchSize != 500 {
		t.Errorf("defaults = port %d store %q batch %d", cfg.ServerPort, cfg.DocumentStore, cfg.BatchSize)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.R2.Enabled() || cfg.DiscordEnabled() {
		t.Errorf("optional integrations enabled without configuration")
	}
}

func TestLoadOverrides(t *testing.T) {
	setEnv(t, map[string]string{
		"JWT_SECRET_KEY":        "secret",
		"SERVER_PORT":           "9000",
		"DOCUMENT_STORE":        "Postgres",
		"DATABASE_URL":          "postgres://localhost/dashboard",
		"SESSION_TTL":           "90m",
		"CORS_ALLOWED_ORIGINS":  "https://a.example, https://b.example,",
		"DISCORD_WEBHOOK_ID":    "1",
		"DISCORD_WEBHOOK_TOKEN": "t",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != 9000 || cfg.DocumentStore != StorePostgres || cfg.SessionTTL != 90*time.Minute {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("CORSAllowedOrigins = %q", cfg.CORSAllowedOrigins)
	}
	if !cfg.DiscordEnabled() {
		t.Errorf("DiscordEnabled() = false")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []map[string]string{
		{},
		{"JWT_SECRET_KEY": "s", "SERVER_PORT": "70000"},
		{"JWT_SECRET_KEY": "s", "SERVER_PORT": "eighty"},
		{"JWT_SECRET_KEY": "s", "DOCUMENT_STORE": "mongo"},
		{"JWT_SECRET_KEY": "s", "DOCUMENT_STORE": "postgres"},
		{"JWT_SECRET_KEY": "s", "BATCH_SIZE": "0"},
		{"JWT_SECRET_KEY": "s", "SESSION_TTL": "forever"},
	}
	for _, env := range tests {
		setEnv(t, env)
		if _, err := Load(); err == nil {
			t.Errorf("Load() with %v succeeded, want error", env)
		}
	}
}
