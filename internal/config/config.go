package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Config defines dashview configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Backend BackendConfig `yaml:"backend"`
	Log     LogConfig     `yaml:"log"`
}

type StorageConfig struct {
	// Driver selects the mirror backend: "file" or "sqlite".
	Driver string `yaml:"driver"`
	// Path is the mirror directory (file) or database path (sqlite).
	Path string `yaml:"path"`
}

type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Storage: StorageConfig{
			Driver: DriverFile,
			Path:   ".dashview",
		},
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 15,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("DASHVIEW_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if driver := os.Getenv("DASHVIEW_STORAGE_DRIVER"); driver != "" {
		cfg.Storage.Driver = driver
	}
	if path := os.Getenv("DASHVIEW_STORAGE_PATH"); path != "" {
		cfg.Storage.Path = path
	}
	if url := os.Getenv("DASHVIEW_BACKEND_URL"); url != "" {
		cfg.Backend.BaseURL = url
	}
	if timeoutStr := os.Getenv("DASHVIEW_BACKEND_TIMEOUT"); timeoutStr != "" {
		timeout, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DASHVIEW_BACKEND_TIMEOUT: %w", err)
		}
		cfg.Backend.TimeoutSeconds = timeout
	}
	if level := os.Getenv("DASHVIEW_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Storage.Driver != DriverFile && cfg.Storage.Driver != DriverSQLite {
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
