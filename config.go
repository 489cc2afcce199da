package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	defaultConfigFile = "config.yaml"
	defaultOutputFile = "repo_combined.txt"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid config")
)

// Config is the run configuration. It is loaded once and read-only afterwards.
type Config struct {
	TextExtensions    []string `mapstructure:"text_extensions"`
	DefaultExclusions []string `mapstructure:"default_exclusions"`
	DefaultOutput     string   `mapstructure:"default_output"`
	TokenMultiplier   float64  `mapstructure:"token_multiplier"`

	extensionSet map[string]bool
}

// loadConfig reads and validates the YAML config document at path.
func loadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at '%s'", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("error accessing config file %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("default_output", defaultOutputFile)
	v.SetDefault("default_exclusions", []string{})

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error parsing YAML config file %s: %w", path, err)
	}

	for _, key := range []string{"text_extensions", "token_multiplier"} {
		if !v.IsSet(key) {
			return nil, fmt.Errorf("%w: %s: missing required key %q", ErrInvalidConfig, path, key)
		}
	}

	var cfg Config
	// No weak typing and no string splitting: a scalar where a list is
	// expected is an error rather than a one-element list.
	err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = false
		dc.DecodeHook = nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.TextExtensions) == 0 {
		return errors.New("text_extensions must list at least one extension")
	}
	if math.IsNaN(c.TokenMultiplier) || math.IsInf(c.TokenMultiplier, 0) || c.TokenMultiplier < 0 {
		return fmt.Errorf("token_multiplier must be a non-negative number, got %v", c.TokenMultiplier)
	}
	if strings.TrimSpace(c.DefaultOutput) == "" {
		return errors.New("default_output must not be empty")
	}

	c.extensionSet = make(map[string]bool, len(c.TextExtensions))
	for i, ext := range c.TextExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			return fmt.Errorf("text_extensions[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.TextExtensions[i] = ext
		c.extensionSet[ext] = true
	}
	return nil
}

// IsTextExtension reports whether ext (with leading dot, any case) is configured as text.
func (c *Config) IsTextExtension(ext string) bool {
	return c.extensionSet[strings.ToLower(ext)]
}
