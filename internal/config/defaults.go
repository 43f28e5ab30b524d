package config

// DefaultPath is where Load looks when no --config flag is given.
const DefaultPath = "portfolio.yml"

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Mode: "release",
		},
		Refiner: RefinerConfig{
			FallbackRecipient: "Shyam",
			CopyToClipboard:   true,
		},
		Analytics: AnalyticsConfig{
			Enabled:       true,
			DatabasePath:  "data/portfolio.db",
			RetentionDays: 365,
		},
		Function: FunctionConfig{
			Model: "gpt-4o-mini",
		},
	}
}
