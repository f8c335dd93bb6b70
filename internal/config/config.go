package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	AI     AIConfig     `toml:"ai"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host                  string   `toml:"host"`
	Port                  int      `toml:"port"`
	AllowedOrigins        []string `toml:"allowed_origins"`
	RequestTimeoutSeconds int      `toml:"request_timeout_seconds"`
}

// AIConfig holds the server-side provider settings. The API keys act as the
// fallback for requests that carry no key of their own.
type AIConfig struct {
	DefaultProvider  string `toml:"default_provider"`
	AnthropicAPIKey  string `toml:"anthropic_api_key"`
	OpenAIAPIKey     string `toml:"openai_api_key"`
	AnthropicModel   string `toml:"anthropic_model"`
	OpenAIModel      string `toml:"openai_model"`
	AnthropicBaseURL string `toml:"anthropic_base_url"`
	OpenAIBaseURL    string `toml:"openai_base_url"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// envOverrides lists the environment variables that take priority over the
// config file. Unset variables leave the file values alone.
type envOverrides struct {
	Host            string   `envconfig:"HOST"`
	Port            int      `envconfig:"PORT"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS"`
	Provider        string   `envconfig:"AI_PROVIDER"`
	AnthropicAPIKey string   `envconfig:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey    string   `envconfig:"OPENAI_API_KEY"`
	LogLevel        string   `envconfig:"LOG_LEVEL"`
}

const defaultConfigContent = `[server]
host = "0.0.0.0"
port = 8000
allowed_origins = ["http://localhost:3000"]   # or set ALLOWED_ORIGINS (comma-separated)
request_timeout_seconds = 60

[ai]
default_provider = "anthropic"     # "anthropic" or "openai"
anthropic_api_key = ""             # or set ANTHROPIC_API_KEY
openai_api_key = ""                # or set OPENAI_API_KEY
anthropic_model = "claude-3-7-sonnet-20250219"
openai_model = "gpt-4"

[log]
level = "info"                     # debug, info, warn, error
format = "json"                    # json or text
`

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. Environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// explicitly writing "port = 0" is an error rather than silently
	// being replaced with the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg)

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("server", "request_timeout_seconds") {
		if cfg.Server.RequestTimeoutSeconds < 1 {
			return fmt.Errorf("invalid server.request_timeout_seconds %d: must be >= 1", cfg.Server.RequestTimeoutSeconds)
		}
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Server.RequestTimeoutSeconds == 0 {
		cfg.Server.RequestTimeoutSeconds = 60
	}
	if cfg.AI.DefaultProvider == "" {
		cfg.AI.DefaultProvider = "anthropic"
	}
	if cfg.AI.AnthropicModel == "" {
		cfg.AI.AnthropicModel = "claude-3-7-sonnet-20250219"
	}
	if cfg.AI.OpenAIModel == "" {
		cfg.AI.OpenAIModel = "gpt-4"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
func applyEnvOverrides(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return err
	}

	if env.Host != "" {
		cfg.Server.Host = env.Host
	}
	if env.Port != 0 {
		cfg.Server.Port = env.Port
	}
	if origins := trimAll(env.AllowedOrigins); len(origins) > 0 {
		cfg.Server.AllowedOrigins = origins
	}
	if env.Provider != "" {
		cfg.AI.DefaultProvider = env.Provider
	}
	if env.AnthropicAPIKey != "" {
		cfg.AI.AnthropicAPIKey = env.AnthropicAPIKey
	}
	if env.OpenAIAPIKey != "" {
		cfg.AI.OpenAIAPIKey = env.OpenAIAPIKey
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	return nil
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	switch cfg.AI.DefaultProvider {
	case "anthropic", "openai":
		// valid
	default:
		return fmt.Errorf("invalid ai.default_provider %q: must be \"anthropic\" or \"openai\"", cfg.AI.DefaultProvider)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log.format %q: must be \"json\" or \"text\"", cfg.Log.Format)
	}

	if cfg.AI.AnthropicAPIKey == "" && cfg.AI.OpenAIAPIKey == "" {
		slog.Warn("no fallback API keys configured: requests must carry their own key")
	}

	return nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
