package config

import (
	"path/filepath"
	"testing"
)

// clearLegacyEnv keeps the host environment from leaking into tests.
func clearLegacyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "GIN_MODE", "SUPABASE_URL", "SUPABASE_PUBLISHABLE_KEY", "ADMIN_USERNAME", "ADMIN_PASSWORD", "OPENAI_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Refiner.FallbackRecipient != "Shyam" {
		t.Errorf("expected default recipient %q, got %q", "Shyam", cfg.Refiner.FallbackRecipient)
	}
	if !cfg.Analytics.Enabled {
		t.Error("expected analytics enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearLegacyEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	clearLegacyEnv(t)
	path := filepath.Join(t.TempDir(), "portfolio.yml")

	original := DefaultConfig()
	original.Server.Port = 9090
	original.Refiner.Endpoint = "https://example.supabase.co/functions/v1"
	original.Refiner.PublicKey = "anon-key"
	original.Refiner.FallbackRecipient = "Team"
	original.Analytics.Enabled = false

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", loaded.Server.Port)
	}
	if loaded.Refiner.Endpoint != original.Refiner.Endpoint {
		t.Errorf("endpoint: got %q, want %q", loaded.Refiner.Endpoint, original.Refiner.Endpoint)
	}
	if loaded.Refiner.FallbackRecipient != "Team" {
		t.Errorf("recipient: got %q, want %q", loaded.Refiner.FallbackRecipient, "Team")
	}
	if loaded.Analytics.Enabled {
		t.Error("analytics should be disabled after round-trip")
	}
	if !loaded.RefinerConfigured() {
		t.Error("expected refiner to be configured")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("PORTFOLIO_SERVER__PORT", "7000")
	t.Setenv("PORTFOLIO_REFINER__PUBLIC_KEY", "from-env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("port: got %d, want 7000", cfg.Server.Port)
	}
	if cfg.Refiner.PublicKey != "from-env" {
		t.Errorf("public key: got %q, want %q", cfg.Refiner.PublicKey, "from-env")
	}
}

func TestLoadLegacyEnv(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co/")
	t.Setenv("SUPABASE_PUBLISHABLE_KEY", "pk")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("port: got %d, want 3000", cfg.Server.Port)
	}
	if want := "https://abc.supabase.co/functions/v1"; cfg.Refiner.Endpoint != want {
		t.Errorf("endpoint: got %q, want %q", cfg.Refiner.Endpoint, want)
	}
	if cfg.Refiner.PublicKey != "pk" {
		t.Errorf("public key: got %q, want %q", cfg.Refiner.PublicKey, "pk")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"huge port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad mode", func(c *Config) { c.Server.Mode = "loud" }, true},
		{"relative endpoint", func(c *Config) { c.Refiner.Endpoint = "/functions/v1" }, true},
		{"ftp endpoint", func(c *Config) { c.Refiner.Endpoint = "ftp://host/fn" }, true},
		{"https endpoint", func(c *Config) { c.Refiner.Endpoint = "https://host/fn" }, false},
		{"analytics without db", func(c *Config) { c.Analytics.DatabasePath = "" }, true},
		{"analytics off without db", func(c *Config) {
			c.Analytics.Enabled = false
			c.Analytics.DatabasePath = ""
		}, false},
		{"negative retention", func(c *Config) { c.Analytics.RetentionDays = -1 }, true},
		{"function without key", func(c *Config) { c.Function.Enabled = true }, true},
		{"function with key", func(c *Config) {
			c.Function.Enabled = true
			c.Function.APIKey = "sk"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
