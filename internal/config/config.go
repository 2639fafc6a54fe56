// Package config provides configuration loading and validation for the
// hibp-bloom CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidRate   = errors.New("config: false positive rate must be in the open interval (0, 1)")
	ErrInvalidTrials = errors.New("config: false positive trials must be positive")
)

// Default configuration values.
const (
	defaultRate      = 0.001
	defaultTrials    = 100_000
	defaultMaxMemory = "512MiB"
	envPrefix        = "HIBP_BLOOM"
	configName       = ".hibp-bloom"
)

// Config holds the CLI defaults. Every value can be overridden per
// invocation with a flag.
type Config struct {
	// MaxMemory is the default memory budget for create-maxmem, in any
	// notation go-humanize accepts ("64MiB", "1.5GB").
	MaxMemory string `mapstructure:"max_memory"`

	// FalsePositiveRate is the default target rate for create-falsepos.
	FalsePositiveRate float64 `mapstructure:"false_positive_rate"`

	// Trials is the default probe count for the falsepos command.
	Trials int `mapstructure:"trials"`
}

// Load reads configuration from the named file, or from an optional
// .hibp-bloom.{yaml,toml,json} in the working directory and home directory
// when path is empty. Environment variables prefixed with HIBP_BLOOM_
// override file values. A file missing from the search path is not an
// error; a missing explicitly named file, or a malformed or invalid one, is.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("max_memory", defaultMaxMemory)
	v.SetDefault("false_positive_rate", defaultRate)
	v.SetDefault("trials", defaultTrials)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	err := v.ReadInConfig()
	if err != nil {
		// An absent file on the search path is fine; an explicitly named
		// file that cannot be read, or a malformed file, is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config

	unmarshalErr := v.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	if c.FalsePositiveRate <= 0 || c.FalsePositiveRate >= 1 {
		return ErrInvalidRate
	}

	if c.Trials <= 0 {
		return ErrInvalidTrials
	}

	return nil
}
