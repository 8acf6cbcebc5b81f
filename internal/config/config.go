// Package config loads server settings from defaults, an optional YAML file
// and PORTFOLIO_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/17okk-xie/portfolio/internal/catalog"
	"github.com/17okk-xie/portfolio/internal/db"
	"github.com/17okk-xie/portfolio/internal/logging"
	"github.com/17okk-xie/portfolio/internal/model"
)

// DefaultPIN unlocks the upload page when no PIN is configured.
const DefaultPIN = "7526"

type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	DBDriver    string `yaml:"db_driver"`
	DBPath      string `yaml:"db_path"`
	DatabaseURL string `yaml:"database_url"`

	MediaDir       string `yaml:"media_dir"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`

	// SecureCookies marks the session cookie Secure; enable behind HTTPS.
	SecureCookies bool `yaml:"secure_cookies"`

	PIN       string `yaml:"pin"`
	PINHash   string `yaml:"pin_hash"`
	JWTSecret string `yaml:"jwt_secret"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogFile   string `yaml:"log_file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ListenAddr:     ":8080",
		DBDriver:       string(db.DriverSQLite),
		DBPath:         "portfolio.sqlite3",
		MediaDir:       "media",
		MaxUploadBytes: catalog.MaxMediaSize,
		PIN:            DefaultPIN,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load reads path (if non-empty and present) over the defaults and then
// applies environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.ListenAddr = getEnv("PORTFOLIO_LISTEN_ADDR", c.ListenAddr)
	c.DBDriver = getEnv("PORTFOLIO_DB_DRIVER", c.DBDriver)
	c.DBPath = getEnv("PORTFOLIO_DB_PATH", c.DBPath)
	c.DatabaseURL = getEnv("PORTFOLIO_DATABASE_URL", c.DatabaseURL)
	c.MediaDir = getEnv("PORTFOLIO_MEDIA_DIR", c.MediaDir)
	c.PIN = getEnv("PORTFOLIO_PIN", c.PIN)
	c.PINHash = getEnv("PORTFOLIO_PIN_HASH", c.PINHash)
	c.JWTSecret = getEnv("PORTFOLIO_JWT_SECRET", c.JWTSecret)
	c.LogLevel = getEnv("PORTFOLIO_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("PORTFOLIO_LOG_FORMAT", c.LogFormat)
	c.LogFile = getEnv("PORTFOLIO_LOG_FILE", c.LogFile)

	if v, ok := os.LookupEnv("PORTFOLIO_MAX_UPLOAD_BYTES"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("PORTFOLIO_MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	if v, ok := os.LookupEnv("PORTFOLIO_SECURE_COOKIES"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("PORTFOLIO_SECURE_COOKIES: %w", err)
		}
		c.SecureCookies = b
	}
	return nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	var errs []error
	switch db.Driver(c.DBDriver) {
	case db.DriverSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("db_path is required for sqlite"))
		}
	case db.DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("database_url is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown db_driver %q", c.DBDriver))
	}
	if c.MediaDir == "" {
		errs = append(errs, errors.New("media_dir is required"))
	}
	if c.MaxUploadBytes <= 0 || c.MaxUploadBytes > catalog.MaxMediaSize {
		errs = append(errs, fmt.Errorf("max_upload_bytes must be between 1 and %d", catalog.MaxMediaSize))
	}
	if c.PINHash == "" {
		if err := model.ValidatePIN(c.PIN); err != nil {
			errs = append(errs, fmt.Errorf("pin: %w", err))
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DSN returns the data source for the configured driver.
func (c *Config) DSN() string {
	if db.Driver(c.DBDriver) == db.DriverPostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
