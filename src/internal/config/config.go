// Package config loads refgen settings from ~/.config/refgen/config.yml and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"refgen/src/internal/citation"
	"refgen/src/internal/history"
)

const (
	// Dir is the directory name under XDG_CONFIG_HOME.
	Dir = "refgen"
	// File is the config file name.
	File = "config.yml"
)

// Config holds user settings. Zero values are filled from Default.
type Config struct {
	Style             string        `yaml:"style,omitempty"`
	HistoryPath       string        `yaml:"history_path,omitempty"`
	HistoryLimit      int           `yaml:"history_limit,omitempty"`
	UnpaywallEmail    string        `yaml:"unpaywall_email,omitempty"`
	RequestsPerSecond float64       `yaml:"requests_per_second,omitempty"`
	Timeout           time.Duration `yaml:"timeout,omitempty"`
	LogLevel          string        `yaml:"log_level,omitempty"`
	UserAgent         string        `yaml:"user_agent,omitempty"`
}

var (
	ErrInvalidLimit = errors.New("history_limit must not be negative")
	ErrInvalidRate  = errors.New("requests_per_second must be positive")
)

// Path returns the config file location.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/refgen/config.yml.
func Path() string {
	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		home = filepath.Join(h, ".config")
	}
	return filepath.Join(home, Dir, File)
}

// DataDir is where the history database lives by default.
func DataDir() string {
	home := os.Getenv("XDG_DATA_HOME")
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		home = filepath.Join(h, ".local", "share")
	}
	return filepath.Join(home, Dir)
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Style:             string(citation.ABNT),
		HistoryPath:       filepath.Join(DataDir(), "history.db"),
		HistoryLimit:      history.DefaultLimit,
		RequestsPerSecond: 5,
		Timeout:           10 * time.Second,
		LogLevel:          "warn",
	}
}

// Load reads the file at path (Path() when empty), fills unset fields from
// Default and then applies environment overrides. A missing file is not an
// error.
func Load(path string) (Config, error) {
	if path == "" {
		path = Path()
	}
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}
	cfg.fill(Default())
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) fill(d Config) {
	if c.Style == "" {
		c.Style = d.Style
	}
	if c.HistoryPath == "" {
		c.HistoryPath = d.HistoryPath
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = d.HistoryLimit
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = d.RequestsPerSecond
	}
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("REFGEN_STYLE"); v != "" {
		c.Style = v
	}
	if v := os.Getenv("REFGEN_HISTORY_PATH"); v != "" {
		c.HistoryPath = v
	}
	if v := os.Getenv("REFGEN_HISTORY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REFGEN_HISTORY_LIMIT: %w", err)
		}
		c.HistoryLimit = n
	}
	if v := os.Getenv("REFGEN_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("UNPAYWALL_EMAIL"); v != "" {
		c.UnpaywallEmail = v
	}
	return nil
}

// Validate rejects settings the commands cannot run with.
func (c Config) Validate() error {
	if _, err := citation.ParseStyle(c.Style); err != nil {
		return err
	}
	if c.HistoryLimit < 0 {
		return ErrInvalidLimit
	}
	if c.RequestsPerSecond <= 0 {
		return ErrInvalidRate
	}
	return nil
}

// CitationStyle returns the parsed default style. Call after Validate.
func (c Config) CitationStyle() citation.Style {
	s, _ := citation.ParseStyle(c.Style)
	return s
}
