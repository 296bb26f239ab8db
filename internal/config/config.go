// Package config provides configuration loading and validation for the
// service and CLI tools.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the service configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// Paths
	JobsFile         string `json:"jobs_file,omitempty"`         // Path to the enriched jobs dataset
	KeywordIndexFile string `json:"keyword_index_file,omitempty"` // Path to the keyword taxonomy index
	CategoryFile     string `json:"category_file,omitempty"`     // Path to the category taxonomy

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Behavior
	APIKey  string `json:"api_key,omitempty"` // Gemini API key
	Verbose bool   `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required fields
// are handled by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.JobsFile != "" {
		if _, err := os.Stat(c.JobsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: jobs file not found: %s", c.JobsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.JobsFile == "" {
		result.JobsFile = defaults.JobsFile
	}
	if result.KeywordIndexFile == "" {
		result.KeywordIndexFile = defaults.KeywordIndexFile
	}
	if result.CategoryFile == "" {
		result.CategoryFile = defaults.CategoryFile
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}

// DefaultConfig returns the built-in defaults used when neither a config file
// nor flags override them.
func DefaultConfig() Config {
	return Config{
		JobsFile:         "data/jobs_with_taxonomy.json",
		KeywordIndexFile: "data/keyword_index.json",
		CategoryFile:     "data/category_taxonomy.json",
		Port:             3002,
	}
}
