// Package config defines the scan configuration and its YAML form.
package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// OutputFormat names a reporter output format.
type OutputFormat string

// Supported output formats.
const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
)

// Config holds scan settings, merged from defaults, a discovered or
// explicit .mdlex.yml, and CLI flags (highest precedence).
type Config struct {
	// Format is the output format: text, table, or json.
	Format OutputFormat `yaml:"format"`

	// Color controls colorized output: auto, always, never.
	Color string `yaml:"color"`

	// Strict makes Error tokens fail the scan's exit code.
	Strict bool `yaml:"strict"`

	// DetectLanguage enables language suggestions for unlabeled fences.
	DetectLanguage bool `yaml:"detect_language"`

	// MaxTokens aborts a scan after this many tokens (0 = unlimited).
	MaxTokens int `yaml:"max_tokens"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Format: FormatText,
		Color:  "auto",
	}
}

// Validate checks field values, returning a descriptive error for the
// first invalid one.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatTable, FormatJSON, "":
	default:
		return fmt.Errorf("invalid format %q; valid formats: text, table, json", c.Format)
	}
	switch c.Color {
	case "auto", "always", "never", "":
	default:
		return fmt.Errorf("invalid color mode %q; valid modes: auto, always, never", c.Color)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must not be negative, got %d", c.MaxTokens)
	}
	return nil
}

// ToYAML serializes the configuration to YAML.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}
