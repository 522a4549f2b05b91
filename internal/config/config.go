package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dsci3d/learning-energy-profile/internal/errors"
)

// Config holds everything the CLI and the server need. Values are layered:
// built-in defaults, then an optional YAML file, then environment variables
// (with .env support), then command-line flags applied by the caller.
type Config struct {
	Addr           string        `yaml:"addr"`
	DatabaseURL    string        `yaml:"database_url"`
	OutputDir      string        `yaml:"output_dir"`
	Workers        int           `yaml:"workers"`
	Color          bool          `yaml:"color"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:           ":8080",
		OutputDir:      "out",
		Workers:        4,
		RequestTimeout: 30 * time.Second,
	}
}

// Load builds the configuration. path names an explicit YAML file; when
// empty, lep.yaml / .lep.yaml are searched in the working directory and the
// user's home directory.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadYAML(cfg, path); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", path)
		}
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()
	applyEnv(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// RequireDatabase reports whether a database DSN is configured. Commands that
// touch the archive call this before connecting.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return errors.ConfigInvalid("LEP_DATABASE_URL (or LEP_DB_* variables) is required for archive operations")
	}
	return nil
}

func findConfigFile() string {
	candidates := []string{"lep.yaml", ".lep.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, "lep.yaml"),
			filepath.Join(home, ".lep.yaml"),
		)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnv(cfg *Config) {
	cfg.Addr = getEnvOrDefault("LEP_ADDR", cfg.Addr)
	cfg.OutputDir = getEnvOrDefault("LEP_OUTPUT_DIR", cfg.OutputDir)
	cfg.Workers = getEnvIntOrDefault("LEP_WORKERS", cfg.Workers)
	cfg.Color = getEnvBoolOrDefault("LEP_COLOR", cfg.Color)
	cfg.RequestTimeout = getEnvDurationOrDefault("LEP_REQUEST_TIMEOUT", cfg.RequestTimeout)

	if dsn := os.Getenv("LEP_DATABASE_URL"); dsn != "" {
		cfg.DatabaseURL = dsn
	} else if dsn := composeDSN(); dsn != "" {
		cfg.DatabaseURL = dsn
	}
}

// composeDSN builds a postgres URL from the LEP_DB_* variables. It only
// engages when LEP_DB_NAME is set, so a bare environment leaves DatabaseURL
// untouched.
func composeDSN() string {
	name := os.Getenv("LEP_DB_NAME")
	if name == "" {
		return ""
	}
	host := getEnvOrDefault("LEP_DB_HOST", "localhost")
	port := getEnvIntOrDefault("LEP_DB_PORT", 5432)
	user := getEnvOrDefault("LEP_DB_USER", "postgres")
	pass := os.Getenv("LEP_DB_PASS")
	sslMode := getEnvOrDefault("LEP_DB_SSLMODE", "disable")

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", host, port),
		Path:   name,
	}
	if pass != "" {
		u.User = url.UserPassword(user, pass)
	} else {
		u.User = url.User(user)
	}
	q := url.Values{}
	q.Set("sslmode", sslMode)
	u.RawQuery = q.Encode()
	return u.String()
}

func validateConfig(cfg *Config) error {
	if cfg.Addr == "" {
		return errors.ConfigInvalid("listen address is required")
	}
	if cfg.Workers < 1 {
		return errors.ConfigInvalid("workers must be at least 1")
	}
	if cfg.RequestTimeout <= 0 {
		return errors.ConfigInvalid("request timeout must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
