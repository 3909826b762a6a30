// Package config assembles process configuration from a YAML file,
// environment variables, and built-in defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/commentguard/internal/llm"
	"github.com/abhisek/commentguard/internal/moderate"
)

// Config is the full process configuration for a run.
type Config struct {
	// Input is the path of the JSON comment collection to classify.
	Input string `yaml:"input"`

	// Output is the path the annotated collection is written to.
	Output string `yaml:"output"`

	// Vocabulary is an optional path to a pre-filter term file
	// (one term per line). Empty means the built-in vocabulary.
	Vocabulary string `yaml:"vocabulary"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format"`

	LLM      llm.Config      `yaml:"llm"`
	Moderate moderate.Config `yaml:"moderate"`
}

// Default returns the built-in defaults, mirroring what the analyzer
// originally ran with.
func Default() Config {
	return Config{
		Input:     "comments.json",
		Output:    "analyzed_comments.json",
		LogLevel:  "info",
		LogFormat: "text",
		LLM:       llm.DefaultConfig(),
		Moderate:  moderate.DefaultConfig(),
	}
}

// Load builds the effective configuration: defaults, overlaid with the
// YAML file at path (if path is non-empty), overlaid with environment
// variables. Flag overrides are applied by the CLI afterwards.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("COMMENTGUARD_INPUT"); v != "" {
		c.Input = v
	}
	if v := os.Getenv("COMMENTGUARD_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("COMMENTGUARD_VOCABULARY"); v != "" {
		c.Vocabulary = v
	}
	if v := os.Getenv("COMMENTGUARD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("COMMENTGUARD_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("COMMENTGUARD_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Moderate.Retry.MaxAttempts = n
		}
	}
	if v := os.Getenv("COMMENTGUARD_RETRY_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			c.Moderate.Retry.Delay = d
		}
	}
	if v := os.Getenv("COMMENTGUARD_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Moderate.Workers = n
		}
	}

	c.LLM.ApplyEnv()
}

// Validate checks the configuration for faults that must abort the run
// before any comment is processed.
func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if c.Moderate.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max_attempts must be at least 1")
	}
	if c.Moderate.Retry.Delay < 0 {
		return fmt.Errorf("retry delay must not be negative")
	}
	return c.LLM.Validate()
}
