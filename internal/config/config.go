// Package config loads the client configuration from the kopi home
// directory, with environment variables taking precedence over the file.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/kopi/internal/errors"
)

const (
	// DefaultBaseURL is the API base path used when nothing is configured.
	DefaultBaseURL = "http://localhost:8080/api"

	// DefaultTimeout is the per-request timeout of the HTTP client.
	DefaultTimeout = 10 * time.Second

	configFileName = "config.yaml"
	stateFileName  = "state.db"
)

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API base path, e.g. "https://coffee.example.com/api".
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds is the HTTP request timeout in seconds.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// StatePath is the location of the local state database.
	StatePath string `yaml:"state_path"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HomeDir returns the kopi home directory (~/.kopi), honoring KOPI_HOME.
func HomeDir() string {
	if dir := os.Getenv("KOPI_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kopi"
	}
	return filepath.Join(home, ".kopi")
}

// Default returns the configuration used when no file or environment is present.
func Default() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: int(DefaultTimeout / time.Second),
		StatePath:      filepath.Join(HomeDir(), stateFileName),
		LogLevel:       "warn",
	}
}

// Load reads the configuration from ~/.kopi/config.yaml, then applies
// environment overrides. A missing file is not an error; a malformed one is.
//
// A .env file in the working directory is loaded first so local development
// setups can point at a non-default backend without exporting variables.
func Load() (Config, error) {
	// Ignore a missing .env; only explicit files matter.
	_ = godotenv.Load()

	cfg := Default()

	path := filepath.Join(HomeDir(), configFileName)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults and environment only.
	case err != nil:
		return Config{}, errors.Wrap(errors.ErrCodeConfigRead, "failed to read config file: "+path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.NewConfigParseError(path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.StatePath == "" {
		cfg.StatePath = filepath.Join(HomeDir(), stateFileName)
	}

	return cfg, nil
}

// applyEnv overrides file values with KOPI_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("KOPI_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("KOPI_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("KOPI_STATE_PATH"); v != "" {
		cfg.StatePath = v
	}
	if v := os.Getenv("KOPI_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Save writes the configuration back to ~/.kopi/config.yaml.
func Save(cfg Config) error {
	dir := HomeDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to create config directory: "+dir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigParse, "failed to encode config", err)
	}

	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write config file: "+path, err)
	}
	return nil
}
