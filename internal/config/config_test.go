package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

// isolate keeps the developer's own config file and environment out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("base-url", "", "")
	flags.Duration("timeout", 0, "")
	flags.Uint("attempts", 0, "")
	flags.String("output-dir", "", "")
	flags.String("format", "", "")
	flags.Bool("force", false, "")
	return flags
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := DefaultConfig()
	if *cfg != *want {
		t.Errorf("Load() = %+v, expected defaults %+v", cfg, want)
	}
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)

	configFile := filepath.Join(t.TempDir(), "cf.yaml")
	content := `
base_url: https://mirror.example.com
timeout: 5s
attempts: 5
output_dir: ~/problems
format: json
overwrite: true
`
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(configFile, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BaseURL != "https://mirror.example.com" {
		t.Errorf("expected base_url from file, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %s", cfg.Timeout)
	}
	if cfg.Attempts != 5 {
		t.Errorf("expected attempts 5, got %d", cfg.Attempts)
	}
	if cfg.OutputDir != "~/problems" {
		t.Errorf("expected output_dir from file, got %q", cfg.OutputDir)
	}
	if cfg.Format != "json" || !cfg.Overwrite {
		t.Errorf("expected json format with overwrite, got %q %v", cfg.Format, cfg.Overwrite)
	}
	if cfg.UserAgent != DefaultConfig().UserAgent {
		t.Errorf("unset keys should keep defaults, got user_agent %q", cfg.UserAgent)
	}
}

func TestLoadSearchesWorkingDirectory(t *testing.T) {
	isolate(t)

	if err := os.WriteFile(FileName+".yaml", []byte("max_lines: 2000\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxLines != 2000 {
		t.Errorf("expected max_lines 2000, got %d", cfg.MaxLines)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadPrecedence(t *testing.T) {
	isolate(t)

	configFile := filepath.Join(t.TempDir(), "cf.yaml")
	if err := os.WriteFile(configFile, []byte("attempts: 4\nformat: json\noutput_dir: from-file\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CFREADME_ATTEMPTS", "6")
	t.Setenv("CFREADME_OUTPUT_DIR", "from-env")

	flags := testFlags()
	if err := flags.Parse([]string{"--output-dir", "from-flag", "--force"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(configFile, flags)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"env beats file", cfg.Attempts, uint(6)},
		{"file beats default", cfg.Format, "json"},
		{"flag beats env", cfg.OutputDir, "from-flag"},
		{"flag maps to key", cfg.Overwrite, true},
		{"unset flag keeps default", cfg.BaseURL, DefaultConfig().BaseURL},
		{"unset flag keeps default timeout", cfg.Timeout, DefaultConfig().Timeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, expected %v", tt.got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero attempts", func(c *Config) { c.Attempts = 0 }, true},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, true},
		{"negative max lines", func(c *Config) { c.MaxLines = -1 }, true},
		{"bad format", func(c *Config) { c.Format = "html" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"warning alias", func(c *Config) { c.LogLevel = "warning" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
