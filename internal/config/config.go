// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format           string `yaml:"format"`
		ConfidenceLevels string `yaml:"confidence_levels"`
		Standard         string `yaml:"standard"`
		Workers          int    `yaml:"workers"`
		Verbose          bool   `yaml:"verbose"`
		Debug            bool   `yaml:"debug"`
		NoColor          bool   `yaml:"no_color"`
	} `yaml:"defaults"`

	// Matching layer acceptance thresholds
	Thresholds struct {
		TokenSetRatio  int     `yaml:"token_set_ratio"`
		PartialRatio   int     `yaml:"partial_ratio"`
		EditRatio      int     `yaml:"edit_ratio"`
		Semantic       float64 `yaml:"semantic"`
		AcronymScore   float64 `yaml:"acronym_score"`
		ChildBoost     float64 `yaml:"child_boost"`
		FuzzyWordDelta int     `yaml:"fuzzy_word_delta"`
	} `yaml:"thresholds"`

	// Taxonomy source; empty means the built-in term set
	Taxonomy struct {
		Path string `yaml:"path"`
	} `yaml:"taxonomy"`

	// Optional semantic layer
	Embedding struct {
		Enabled     bool   `yaml:"enabled"`
		Model       string `yaml:"model"`
		MaxInFlight int    `yaml:"max_in_flight"`
	} `yaml:"embedding"`

	// Golden-set regression gate
	Golden struct {
		F1Floor float64 `yaml:"f1_floor"`
	} `yaml:"golden"`

	// Profiles for different extraction scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents an extraction profile with specific settings
type Profile struct {
	Format           string  `yaml:"format"`
	ConfidenceLevels string  `yaml:"confidence_levels"`
	Standard         string  `yaml:"standard"`
	Workers          int     `yaml:"workers"`
	Verbose          bool    `yaml:"verbose"`
	Debug            bool    `yaml:"debug"`
	NoColor          bool    `yaml:"no_color"`
	TaxonomyPath     string  `yaml:"taxonomy_path"`
	F1Floor          float64 `yaml:"f1_floor"`
	Description      string  `yaml:"description"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.ConfidenceLevels = "all"
	config.Defaults.Standard = "all"
	config.Defaults.Workers = 0 // 0 tracks CPU count
	config.Thresholds.TokenSetRatio = 85
	config.Thresholds.PartialRatio = 90
	config.Thresholds.EditRatio = 80
	config.Thresholds.Semantic = 0.75
	config.Thresholds.AcronymScore = 0.95
	config.Thresholds.ChildBoost = 1.2
	config.Thresholds.FuzzyWordDelta = 2
	config.Embedding.Model = "gemini-embedding-001"
	config.Embedding.MaxInFlight = 4
	config.Golden.F1Floor = 0.9

	// Default profile for CI regression gating
	config.Profiles["regression"] = Profile{
		Format:           "json",
		ConfidenceLevels: "all",
		NoColor:          true,
		F1Floor:          0.9,
		Description:      "Machine-readable output for golden-set gates in CI",
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ValidateConfig checks threshold ranges and profile references
func ValidateConfig(config *Config) error {
	t := config.Thresholds
	for name, v := range map[string]int{
		"token_set_ratio": t.TokenSetRatio,
		"partial_ratio":   t.PartialRatio,
		"edit_ratio":      t.EditRatio,
	} {
		if v < 1 || v > 100 {
			return fmt.Errorf("threshold %s must be in 1..100, got %d", name, v)
		}
	}
	if t.Semantic <= 0 || t.Semantic > 1 {
		return fmt.Errorf("threshold semantic must be in (0, 1], got %v", t.Semantic)
	}
	if t.ChildBoost < 1 {
		return fmt.Errorf("threshold child_boost must be >= 1, got %v", t.ChildBoost)
	}
	if config.Defaults.Workers < 0 {
		return fmt.Errorf("defaults.workers must not be negative")
	}
	if config.Golden.F1Floor < 0 || config.Golden.F1Floor > 1 {
		return fmt.Errorf("golden.f1_floor must be in 0..1, got %v", config.Golden.F1Floor)
	}
	return nil
}

// ApplyProfile overlays a named profile onto the defaults. Unknown
// profile names are an error; zero-valued profile fields keep the
// defaults.
func (c *Config) ApplyProfile(name string) error {
	profile, ok := c.Profiles[name]
	if !ok {
		return fmt.Errorf("unknown profile %q", name)
	}
	if profile.Format != "" {
		c.Defaults.Format = profile.Format
	}
	if profile.ConfidenceLevels != "" {
		c.Defaults.ConfidenceLevels = profile.ConfidenceLevels
	}
	if profile.Standard != "" {
		c.Defaults.Standard = profile.Standard
	}
	if profile.Workers > 0 {
		c.Defaults.Workers = profile.Workers
	}
	if profile.Verbose {
		c.Defaults.Verbose = true
	}
	if profile.Debug {
		c.Defaults.Debug = true
	}
	if profile.NoColor {
		c.Defaults.NoColor = true
	}
	if profile.TaxonomyPath != "" {
		c.Taxonomy.Path = profile.TaxonomyPath
	}
	if profile.F1Floor > 0 {
		c.Golden.F1Floor = profile.F1Floor
	}
	return nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first - prioritize config.yaml
	for _, name := range []string{"config.yaml", "finterm.yaml", "finterm.yml", ".finterm.yaml", ".finterm.yml"} {
		if fileExists(name) {
			return name
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	// Legacy location in the home directory
	for _, name := range []string{".finterm.yaml", ".finterm.yml"} {
		homeConfig := filepath.Join(home, name)
		if fileExists(homeConfig) {
			return homeConfig
		}
	}

	// XDG config directory
	xdgBase := os.Getenv("XDG_CONFIG_HOME")
	if xdgBase == "" {
		xdgBase = filepath.Join(home, ".config")
	}
	xdgConfig := filepath.Join(xdgBase, "finterm", "config.yaml")
	if fileExists(xdgConfig) {
		return xdgConfig
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
