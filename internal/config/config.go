package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abacus-tui/abacus/internal/calc"
)

const (
	DefaultDisplayWidth = 24
	MinDisplayWidth     = 8
)

// Config is the on-disk configuration, ~/.config/abacus/config.yaml.
type Config struct {
	ErrorPolicy  string    `yaml:"error_policy"`
	DisplayWidth int       `yaml:"display_width"`
	Log          LogConfig `yaml:"log"`
}

// LogConfig controls where and how much the program logs.
type LogConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // console, json
	Output     string `yaml:"output"` // file, stderr, none
	FilePath   string `yaml:"file_path"`
	MaxSize    int    `yaml:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		ErrorPolicy:  calc.PolicyKeep.String(),
		DisplayWidth: DefaultDisplayWidth,
		Log:          DefaultLogConfig(),
	}
}

func DefaultLogConfig() LogConfig {
	dir, err := Dir()
	if err != nil {
		dir = "."
	}
	return LogConfig{
		Level:      "info",
		Format:     "console",
		Output:     "file",
		FilePath:   filepath.Join(dir, "abacus.log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
}

// Load reads the config at path, or DefaultPath() when path is empty.
// A missing file yields the defaults. ABACUS_* environment variables
// override file values.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = Default()
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.fillDefaults()
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.ErrorPolicy == "" {
		c.ErrorPolicy = def.ErrorPolicy
	}
	if c.DisplayWidth == 0 {
		c.DisplayWidth = def.DisplayWidth
	}

	l, d := &c.Log, def.Log
	if l.Level == "" {
		l.Level = d.Level
	}
	if l.Format == "" {
		l.Format = d.Format
	}
	if l.Output == "" {
		l.Output = d.Output
	}
	if l.FilePath == "" {
		l.FilePath = d.FilePath
	}
	if l.MaxSize == 0 {
		l.MaxSize = d.MaxSize
	}
	if l.MaxBackups == 0 {
		l.MaxBackups = d.MaxBackups
	}
	if l.MaxAge == 0 {
		l.MaxAge = d.MaxAge
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ABACUS_ERROR_POLICY"); v != "" {
		c.ErrorPolicy = v
	}
	if v := os.Getenv("ABACUS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ABACUS_LOG_OUTPUT"); v != "" {
		c.Log.Output = v
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if _, err := calc.ParsePolicy(c.ErrorPolicy); err != nil {
		return err
	}
	if c.DisplayWidth < MinDisplayWidth {
		return fmt.Errorf("display_width must be at least %d, got %d", MinDisplayWidth, c.DisplayWidth)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}
	switch c.Log.Output {
	case "file":
		if c.Log.FilePath == "" {
			return errors.New("log.file_path is required when log.output is file")
		}
	case "stderr", "none":
	default:
		return fmt.Errorf("invalid log output: %s", c.Log.Output)
	}
	return nil
}

// Policy returns the parsed error policy. Call after Validate.
func (c *Config) Policy() calc.ErrorPolicy {
	p, _ := calc.ParsePolicy(c.ErrorPolicy)
	return p
}

// Save writes cfg as YAML to path, or DefaultPath() when path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Dir is the per-user configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "abacus"), nil
}

// DefaultPath is the config file location used when none is given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
