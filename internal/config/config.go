// Package config loads portfolio settings from defaults, an optional YAML
// file and the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override config keys.
// PORTFOLIO_REFINER__PUBLIC_KEY -> refiner.public_key
const EnvPrefix = "PORTFOLIO_"

// Load reads configuration from the given YAML file, then applies the legacy
// environment names (PORT, SUPABASE_URL, ...) and finally PORTFOLIO_* overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	fk := koanf.New(".")
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := fk.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}
	if err := fk.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	applyLegacyEnv(cfg)

	ek := koanf.New(".")
	if err := ek.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}
	if err := ek.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling env overrides: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// applyLegacyEnv honours the variable names the site was first deployed with.
func applyLegacyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		cfg.Refiner.Endpoint = strings.TrimRight(v, "/") + "/functions/v1"
	}
	if v := os.Getenv("SUPABASE_PUBLISHABLE_KEY"); v != "" {
		cfg.Refiner.PublicKey = v
	}
	if v := os.Getenv("ADMIN_USERNAME"); v != "" {
		cfg.Admin.Username = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Function.APIKey = v
	}
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validModes = map[string]bool{
	"debug":   true,
	"release": true,
	"test":    true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.Mode != "" && !validModes[c.Server.Mode] {
		return fmt.Errorf("invalid server.mode %q: must be one of debug, release, test", c.Server.Mode)
	}

	if c.Refiner.Endpoint != "" {
		u, err := url.Parse(c.Refiner.Endpoint)
		if err != nil {
			return fmt.Errorf("invalid refiner.endpoint: %w", err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid refiner.endpoint %q: want an http(s) URL", c.Refiner.Endpoint)
		}
	}

	if c.Analytics.Enabled && c.Analytics.DatabasePath == "" {
		return fmt.Errorf("analytics.database_path is required when analytics is enabled")
	}
	if c.Analytics.RetentionDays < 0 {
		return fmt.Errorf("analytics.retention_days must be non-negative")
	}

	if c.Function.Enabled {
		if c.Function.APIKey == "" {
			return fmt.Errorf("function.api_key is required when the local function is enabled")
		}
		if c.Function.Model == "" {
			return fmt.Errorf("function.model is required when the local function is enabled")
		}
	}

	return nil
}

// RefinerConfigured reports whether the remote refine endpoint can be reached.
func (c *Config) RefinerConfigured() bool {
	return c.Refiner.Endpoint != "" && c.Refiner.PublicKey != ""
}
