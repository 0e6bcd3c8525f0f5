package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds settings for the CLI and HTTP adapters.
// The scoring rules are not configurable.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"` // ":8080"
	} `yaml:"server"`

	Batch struct {
		Concurrency int `yaml:"concurrency"` // 8
		MaxURLs     int `yaml:"max_urls"`    // 1000
	} `yaml:"batch"`

	Reports struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reports"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

// Default returns the built-in configuration
func Default() Config {
	var c Config
	c.Server.Addr = ":8080"
	c.Batch.Concurrency = 8
	c.Batch.MaxURLs = 1000
	c.Reports.OutDir = "./reports"
	c.Logging.Format = "text"
	c.Logging.Level = "info"
	return c
}

// Load builds the configuration from defaults, an optional YAML file,
// an optional .env file and finally URLRISK_* environment variables
func Load(path string) (Config, error) {
	c := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	// A missing .env is normal outside local development
	_ = godotenv.Load()

	if err := applyEnv(&c); err != nil {
		return c, err
	}
	return c, nil
}

func applyEnv(c *Config) error {
	c.Server.Addr = getEnv("URLRISK_ADDR", c.Server.Addr)
	c.Reports.OutDir = getEnv("URLRISK_REPORT_DIR", c.Reports.OutDir)
	c.Logging.Format = getEnv("URLRISK_LOG_FORMAT", c.Logging.Format)
	c.Logging.Level = getEnv("URLRISK_LOG_LEVEL", c.Logging.Level)

	// PORT is set by most container platforms
	if port := os.Getenv("PORT"); port != "" && os.Getenv("URLRISK_ADDR") == "" {
		c.Server.Addr = ":" + port
	}

	var err error
	if c.Batch.Concurrency, err = getEnvInt("URLRISK_BATCH_CONCURRENCY", c.Batch.Concurrency); err != nil {
		return err
	}
	if c.Batch.MaxURLs, err = getEnvInt("URLRISK_BATCH_MAX", c.Batch.MaxURLs); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
	return n, nil
}
