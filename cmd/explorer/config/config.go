// Package config loads the explorer CLI configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/andreiashu/countryexplorer"
)

// EnvURL overrides source.url when set.
const EnvURL = "COUNTRYEXPLORER_URL"

// Config is the CLI configuration file layout.
type Config struct {
	Source SourceConfig `yaml:"source"`
	Cache  CacheConfig  `yaml:"cache"`
	Log    LogConfig    `yaml:"log"`
}

// SourceConfig configures the HTTP data source.
type SourceConfig struct {
	URL       string        `yaml:"url" validate:"required,url"`
	Timeout   time.Duration `yaml:"timeout" validate:"min=1s"`
	UserAgent string        `yaml:"user_agent"`
}

// CacheConfig configures the offline snapshot.
type CacheConfig struct {
	Dir     string `yaml:"dir" validate:"required"`
	Offline bool   `yaml:"offline"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source: SourceConfig{
			URL:     countryexplorer.DefaultURL,
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{Dir: countryexplorer.DefaultCacheDir},
		Log:   LogConfig{Level: "warn"},
	}
}

// DefaultPath returns $HOME/.countryexplorer/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".countryexplorer", "config.yaml"), nil
}

// Load reads the file at path over the defaults. A missing file is not an error.
// The result is not validated; callers apply their overrides and then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("failed to read the config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse the config file %s: %w", path, err)
		}
	}

	if u := os.Getenv(EnvURL); u != "" {
		cfg.Source.URL = u
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	return ParseLevel(c.Log.Level)
}

// ParseLevel maps debug|info|warn|error to a slog level. Unknown values map to warn.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}

// DataSource builds the data source the configuration describes.
func (c Config) DataSource() countryexplorer.DataSource {
	if c.Cache.Offline {
		return countryexplorer.CacheSource{Dir: c.Cache.Dir}
	}
	return countryexplorer.NewHTTPSource(
		countryexplorer.WithURL(c.Source.URL),
		countryexplorer.WithTimeout(c.Source.Timeout),
		countryexplorer.WithUserAgent(c.Source.UserAgent),
	)
}
