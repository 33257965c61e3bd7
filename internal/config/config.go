// Package config loads blob2c settings from YAML files, the environment and
// defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"github.com/xll-gen/blob2c/internal/generator"
)

const (
	// EnvConfig names a config file to load when --config is not given.
	EnvConfig = "BLOB2C_CONFIG"
	// EnvLogLevel overrides logging.level.
	EnvLogLevel = "BLOB2C_LOG_LEVEL"
)

// Input formats accepted in input.format.
const (
	FormatRaw  = "raw"
	FormatIHex = "ihex"
)

// Config holds the settings for one conversion.
// It can be loaded from a YAML file and is then overridden by flags.
type Config struct {
	// Type is the array element type.
	Type string `yaml:"type"`
	// SizeType is the type of the size constant.
	SizeType string `yaml:"size_type"`
	// Prefix is emitted before the array. Nil means the default; an empty
	// string means no prefix text.
	Prefix *string `yaml:"prefix"`
	// Basename overrides the identifier derived from the input path.
	Basename *string `yaml:"basename"`
	// Input describes how the input file is decoded.
	Input InputConfig `yaml:"input"`
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig selects the input decoder.
type InputConfig struct {
	// Format is "raw" (default) or "ihex".
	Format string `yaml:"format"`
	// Fill is the byte used for gaps in an Intel HEX image.
	Fill *uint8 `yaml:"fill"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Path is the log file path. Empty means stderr.
	Path string `yaml:"path"`
}

// LoadFile reads and decodes the YAML config at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// ConfigPath returns the config file named by flagValue, or by the
// BLOB2C_CONFIG environment variable when flagValue is empty.
func ConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	env.Load()
	return env.Str(EnvConfig)
}

// ApplyEnv overrides config fields from the environment.
// The environment is re-read on every call.
func ApplyEnv(config *Config) {
	env.Load()
	config.Logging.Level = env.Str(EnvLogLevel, config.Logging.Level)
}

// ApplyDefaults sets default values for configuration fields that are missing.
func ApplyDefaults(config *Config) {
	if config.Type == "" {
		config.Type = generator.DefaultType
	}
	if config.SizeType == "" {
		config.SizeType = generator.DefaultSizeType
	}
	if config.Prefix == nil {
		p := generator.DefaultPrefix
		config.Prefix = &p
	}
	if config.Input.Format == "" {
		config.Input.Format = FormatRaw
	}
	if config.Input.Fill == nil {
		fill := uint8(0xFF)
		config.Input.Fill = &fill
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "warn"
	}
}

// Validate checks the configuration for unsupported values.
//
// Parameters:
//   - config: The Config object to validate.
//
// Returns:
//   - error: An error if the configuration is invalid, or nil otherwise.
func Validate(config *Config) error {
	switch config.Input.Format {
	case "", FormatRaw, FormatIHex:
		// ok
	default:
		return fmt.Errorf("invalid input format: %s (allowed: %s, %s)", config.Input.Format, FormatRaw, FormatIHex)
	}

	if config.Logging.Level != "" {
		switch strings.ToLower(config.Logging.Level) {
		case "debug", "info", "warn", "error":
			// ok
		default:
			return fmt.Errorf("invalid logging level: %s (allowed: debug, info, warn, error)", config.Logging.Level)
		}
	}

	return nil
}

// Options returns the generator options for input path. The identifier is
// derived from path unless Basename is set.
func (c *Config) Options(path string) generator.Options {
	opts := generator.DefaultOptions(path)
	opts.Type = c.Type
	opts.SizeType = c.SizeType
	if c.Prefix != nil {
		opts.Prefix = *c.Prefix
	}
	if c.Basename != nil {
		opts.Basename = *c.Basename
	}
	return opts
}
