// Package config loads settings from an optional YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all MythOS settings.
type Config struct {
	// HTTP listen port.
	Port int `yaml:"port"`

	// SQLite database path.
	DatabasePath string `yaml:"database_path"`

	// Model settings. An empty API key disables model generation and
	// the engine falls back to templates.
	Model ModelConfig `yaml:"model"`
}

// ModelConfig configures the OpenAI-backed generation path.
type ModelConfig struct {
	APIKey string `yaml:"api_key"`
	Name   string `yaml:"name"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:         8000,
		DatabasePath: "mythos.db",
		Model: ModelConfig{
			Name: "gpt-4o",
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment variables override file values either way.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MYTHOS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Port = n
		}
	}
	if v := os.Getenv("MYTHOS_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("MYTHOS_MODEL"); v != "" {
		c.Model.Name = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Model.APIKey = v
	}
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path not configured")
	}
	return nil
}
