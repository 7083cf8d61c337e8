// Package config holds runtime configuration for the engine and CLI.
// Values come from defaults, an optional YAML file, and CATALOGMESH_*
// environment variables, in that precedence order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values.
type Config struct {
	// DataDir is the root directory for catalog documents and run state.
	DataDir string `yaml:"dataDir"`

	// Provider selects the language-model backend (anthropic, openai).
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`

	// Run limits
	Concurrency      int           `yaml:"concurrency"`
	MaxProviderCalls int           `yaml:"maxProviderCalls"`
	CallTimeout      time.Duration `yaml:"callTimeout"`

	// Logging
	LogFile  string `yaml:"logFile"`
	LogLevel string `yaml:"logLevel"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		DataDir:     "data/catalog",
		Provider:    "anthropic",
		Concurrency: 3,
		CallTimeout: 120 * time.Second,
		LogLevel:    "INFO",
	}
}

// Load reads configuration from environment variables over the defaults.
func Load() Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a YAML configuration file over the defaults, then applies
// environment variables on top.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.DataDir = getEnv("CATALOGMESH_DATA_DIR", c.DataDir)
	c.Provider = getEnv("CATALOGMESH_PROVIDER", c.Provider)
	c.Model = getEnv("CATALOGMESH_MODEL", c.Model)
	c.APIKey = getEnv("CATALOGMESH_API_KEY", c.APIKey)
	c.Concurrency = getEnvInt("CATALOGMESH_CONCURRENCY", c.Concurrency)
	c.MaxProviderCalls = getEnvInt("CATALOGMESH_MAX_CALLS", c.MaxProviderCalls)
	c.LogFile = getEnv("CATALOGMESH_LOG_FILE", c.LogFile)
	c.LogLevel = getEnv("CATALOGMESH_LOG_LEVEL", c.LogLevel)

	if v := os.Getenv("CATALOGMESH_CALL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.CallTimeout = d
		}
	}
}

// Validate checks the configuration for values no run can work with.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("dataDir must not be empty")
	}
	switch c.Provider {
	case "anthropic", "openai", "mock":
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.MaxProviderCalls < 0 {
		return fmt.Errorf("maxProviderCalls must not be negative, got %d", c.MaxProviderCalls)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
