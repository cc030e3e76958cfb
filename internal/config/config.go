package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pfrederiksen/cf-readme/internal/logger"
	"github.com/pfrederiksen/cf-readme/internal/problem"
	"github.com/pfrederiksen/cf-readme/internal/readme"
	"github.com/pfrederiksen/cf-readme/internal/scraper"
	"github.com/pfrederiksen/cf-readme/internal/storage"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "CFREADME"

// FileName is the config file searched for when --config is not given.
const FileName = ".cf-readme"

// Config holds every setting the CLI needs.
type Config struct {
	BaseURL    string        `mapstructure:"base_url"`
	UserAgent  string        `mapstructure:"user_agent"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Attempts   uint          `mapstructure:"attempts"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	MaxLines   int           `mapstructure:"max_lines"`
	OutputDir  string        `mapstructure:"output_dir"`
	Output     string        `mapstructure:"output"`
	Format     string        `mapstructure:"format"`
	Overwrite  bool          `mapstructure:"overwrite"`
	LogLevel   string        `mapstructure:"log_level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    problem.DefaultBaseURL,
		UserAgent:  scraper.UserAgent,
		Timeout:    scraper.Timeout,
		Attempts:   scraper.DefaultAttempts,
		RetryDelay: scraper.DefaultRetryDelay,
		MaxLines:   0,
		OutputDir:  ".",
		Output:     storage.DefaultFileName,
		Format:     string(readme.FormatMarkdown),
		Overwrite:  false,
		LogLevel:   string(logger.LevelWarn),
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"base-url":    "base_url",
	"user-agent":  "user_agent",
	"timeout":     "timeout",
	"attempts":    "attempts",
	"retry-delay": "retry_delay",
	"max-lines":   "max_lines",
	"output-dir":  "output_dir",
	"output":      "output",
	"format":      "format",
	"force":       "overwrite",
	"log-level":   "log_level",
}

// Load builds the configuration. cfgFile may be empty, in which case a
// missing config file is not an error. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("user_agent", defaults.UserAgent)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("attempts", defaults.Attempts)
	v.SetDefault("retry_delay", defaults.RetryDelay)
	v.SetDefault("max_lines", defaults.MaxLines)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("overwrite", defaults.Overwrite)
	v.SetDefault("log_level", defaults.LogLevel)

	// Environment variables with CFREADME_ prefix
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	// Try to read config file (not required unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the rest of the program cannot work with.
func (c *Config) Validate() error {
	if c.Attempts < 1 {
		return fmt.Errorf("attempts must be at least 1, got %d", c.Attempts)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.MaxLines < 0 {
		return fmt.Errorf("max_lines must not be negative, got %d", c.MaxLines)
	}
	if _, err := readme.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
