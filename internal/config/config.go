// Package config loads the service configuration from a YAML file with
// environment overrides for the secrets.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverCSV      = "csv"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// StorageConfig selects and parameterizes the backing table store.
type StorageConfig struct {
	// Driver is one of csv, sqlite or postgres.
	Driver string `yaml:"driver"`

	// CSVDir is the data directory of the csv driver.
	CSVDir string `yaml:"csv_dir"`

	// SQLitePath is the database file of the sqlite driver.
	SQLitePath string `yaml:"sqlite_path"`

	// PostgresDSN is the connection string of the postgres driver.
	PostgresDSN string `yaml:"postgres_dsn"`
}

// Config is the full service configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	// StaticDir, when set, is served for non-API routes (the form
	// frontend). Empty disables static serving.
	StaticDir string `yaml:"static_dir"`

	// Participants are the two display names expenses are attributed to.
	Participants []string `yaml:"participants"`

	// PINHash is the bcrypt hash of the login PIN (see `kakei hash-pin`).
	PINHash string `yaml:"pin_hash"`

	// JWTSecret signs the session tokens.
	JWTSecret string `yaml:"jwt_secret"`

	SessionTimeoutMinutes int `yaml:"session_timeout_minutes"`

	// AssetCategories are the six display names of the asset snapshot
	// columns.
	AssetCategories []string `yaml:"asset_categories"`

	// RecordsDir is where the monthly recordYYYYMM.csv files live.
	RecordsDir string `yaml:"records_dir"`

	Storage StorageConfig `yaml:"storage"`
}

// Load reads the YAML file at path and applies environment overrides.
// A .env file in the working directory is honored if present. A missing
// config file is not an error; the configuration then comes entirely
// from defaults and the environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:            ":8080",
		SessionTimeoutMinutes: 30,
		RecordsDir:            "./records",
		Storage: StorageConfig{
			Driver:     DriverCSV,
			CSVDir:     "./data",
			SQLitePath: "./data/kakei.db",
		},
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setIfPresent := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setIfPresent("KAKEI_LISTEN_ADDR", &cfg.ListenAddr)
	setIfPresent("KAKEI_PIN_HASH", &cfg.PINHash)
	setIfPresent("KAKEI_JWT_SECRET", &cfg.JWTSecret)
	setIfPresent("KAKEI_STORAGE_DRIVER", &cfg.Storage.Driver)
	setIfPresent("KAKEI_CSV_DIR", &cfg.Storage.CSVDir)
	setIfPresent("KAKEI_SQLITE_PATH", &cfg.Storage.SQLitePath)
	setIfPresent("KAKEI_POSTGRES_DSN", &cfg.Storage.PostgresDSN)
	setIfPresent("KAKEI_RECORDS_DIR", &cfg.RecordsDir)

	if v := os.Getenv("KAKEI_SESSION_TIMEOUT_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			cfg.SessionTimeoutMinutes = minutes
		}
	}
}

// Validate checks that the configuration is complete enough to serve.
func (c *Config) Validate() error {
	if len(c.Participants) != 2 {
		return fmt.Errorf("participants: exactly two names required, got %d", len(c.Participants))
	}
	if c.PINHash == "" {
		return fmt.Errorf("pin_hash is required (generate one with `kakei hash-pin`)")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if c.SessionTimeoutMinutes <= 0 {
		return fmt.Errorf("session_timeout_minutes must be positive, got %d", c.SessionTimeoutMinutes)
	}
	if len(c.AssetCategories) != 6 {
		return fmt.Errorf("asset_categories: exactly six names required, got %d", len(c.AssetCategories))
	}
	switch c.Storage.Driver {
	case DriverCSV, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverPostgres && c.Storage.PostgresDSN == "" {
		return fmt.Errorf("storage.postgres_dsn is required for the postgres driver")
	}
	return nil
}

// SessionTimeout returns the configured timeout as a duration.
func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.SessionTimeoutMinutes) * time.Minute
}
