package config

// Config is the top-level portfolio configuration, corresponding to portfolio.yml.
type Config struct {
	Server    ServerConfig    `yaml:"server" koanf:"server"`
	Refiner   RefinerConfig   `yaml:"refiner" koanf:"refiner"`
	Analytics AnalyticsConfig `yaml:"analytics" koanf:"analytics"`
	Admin     AdminConfig     `yaml:"admin" koanf:"admin"`
	Function  FunctionConfig  `yaml:"function" koanf:"function"`
	Content   ContentConfig   `yaml:"content" koanf:"content"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port int    `yaml:"port" koanf:"port"`
	Mode string `yaml:"mode" koanf:"mode"` // gin mode: debug, release, test
}

// RefinerConfig points the message refiner at its remote function.
type RefinerConfig struct {
	// Endpoint is the functions base URL; requests go to <endpoint>/refine-message.
	Endpoint          string `yaml:"endpoint" koanf:"endpoint"`
	PublicKey         string `yaml:"public_key" koanf:"public_key"`
	FallbackRecipient string `yaml:"fallback_recipient" koanf:"fallback_recipient"`
	CopyToClipboard   bool   `yaml:"copy_to_clipboard" koanf:"copy_to_clipboard"`
}

// AnalyticsConfig controls visitor tracking.
type AnalyticsConfig struct {
	Enabled       bool   `yaml:"enabled" koanf:"enabled"`
	DatabasePath  string `yaml:"database_path" koanf:"database_path"`
	RetentionDays int    `yaml:"retention_days" koanf:"retention_days"`
}

// AdminConfig holds the admin area credentials.
type AdminConfig struct {
	Username string `yaml:"username" koanf:"username"`
	Password string `yaml:"password" koanf:"password"`
}

// FunctionConfig enables the locally served refine-message function.
type FunctionConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	APIKey  string `yaml:"api_key" koanf:"api_key"`
	BaseURL string `yaml:"base_url" koanf:"base_url"`
	Model   string `yaml:"model" koanf:"model"`
	// AllowedOrigins limits browser callers; empty allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
}

// ContentConfig points at an optional YAML file overriding the built-in page content.
type ContentConfig struct {
	File string `yaml:"file" koanf:"file"`
}
