package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/shiftrota/pkg/core/objective"
)

// ObjectiveWeights overrides the objective's scoring increments.
type ObjectiveWeights struct {
	Ranking          int `yaml:"ranking" validate:"omitempty,min=1"`
	AdditionalShifts int `yaml:"additionalShifts" validate:"omitempty,min=1"`
}

// Config represents the optional application configuration. Everything has a
// sensible default; a missing config file is not an error.
type Config struct {
	// LogDir is where run logs are written. Defaults to "logs".
	LogDir string `yaml:"logDir,omitempty"`

	Objective ObjectiveWeights `yaml:"objective,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{LogDir: "logs"}
}

// Load loads and validates the configuration from shiftrota_config.yaml,
// looking in the current directory first, then in the user's home directory.
// Returns defaults when no file is found.
func Load() (*Config, error) {
	path, ok := findConfigFile()
	if !ok {
		return Default(), nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "logs"
	}

	return cfg, nil
}

// Weights resolves the objective weights, falling back to the standard
// increments for anything unset.
func (c *Config) Weights() objective.Weights {
	weights := objective.DefaultWeights()
	if c.Objective.Ranking > 0 {
		weights.Ranking = c.Objective.Ranking
	}
	if c.Objective.AdditionalShifts > 0 {
		weights.AdditionalShifts = c.Objective.AdditionalShifts
	}
	return weights
}

// findConfigFile searches for shiftrota_config.yaml in the current directory
// and the home directory.
func findConfigFile() (string, bool) {
	configFileName := "shiftrota_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, true
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, true
	}

	return "", false
}
