// SPDX-License-Identifier: Apache-2.0

// Package config loads service settings from a YAML file, a .env file and
// CITEENGINE_* environment variables, in that order of precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

const envPrefix = "CITEENGINE_"

type Config struct {
	Store    StoreConfig    `yaml:"store"`
	HTTP     HTTPConfig     `yaml:"http"`
	Emphasis EmphasisConfig `yaml:"emphasis"`
	Log      LogConfig      `yaml:"log"`
}

// StoreConfig selects the citation store. An empty Path keeps citations in memory.
type StoreConfig struct {
	Path string `yaml:"path"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
	// BaseURL prefixes article links in formatted references.
	BaseURL string `yaml:"base_url"`
}

type EmphasisConfig struct {
	// Duration is a Go duration string such as "3s".
	Duration string `yaml:"duration"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Config {
	return Config{
		HTTP:     HTTPConfig{Addr: ":8080", BaseURL: "http://localhost:8080"},
		Emphasis: EmphasisConfig{Duration: "3s"},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads defaults, then the YAML file at path (skipped when path is empty),
// then environment overrides. Unknown YAML keys are rejected.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
			return cfg, fmt.Errorf("failed to unmarshal config %q: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, cfg.Validate()
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %q: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from CITEENGINE_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	set("STORE_PATH", &c.Store.Path)
	set("HTTP_ADDR", &c.HTTP.Addr)
	set("BASE_URL", &c.HTTP.BaseURL)
	set("EMPHASIS_DURATION", &c.Emphasis.Duration)
	set("LOG_LEVEL", &c.Log.Level)
	set("LOG_FORMAT", &c.Log.Format)
}

func (c Config) Validate() error {
	if _, err := c.EmphasisDelay(); err != nil {
		return err
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	return nil
}

// EmphasisDelay parses Emphasis.Duration.
func (c Config) EmphasisDelay() (time.Duration, error) {
	d, err := time.ParseDuration(c.Emphasis.Duration)
	if err != nil {
		return 0, fmt.Errorf("invalid emphasis duration %q: %w", c.Emphasis.Duration, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("emphasis duration must be positive, got %s", d)
	}
	return d, nil
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// NewLogger builds the process logger writing to w.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := parseLevel(c.Level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
