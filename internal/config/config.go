// Package config handles jasmir.toml tool configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/roach88/jasmir/internal/syntax"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "jasmir.toml"

// Config represents a jasmir.toml configuration.
type Config struct {
	Output Output `toml:"output"`
	Log    Log    `toml:"log"`
	Lower  Lower  `toml:"lower"`

	// Path is the file the configuration was loaded from, empty for defaults.
	Path string `toml:"-"`
}

// Output configures command output.
type Output struct {
	Format  string `toml:"format"`
	Verbose bool   `toml:"verbose"`
}

// Log configures the diagnostic logger.
type Log struct {
	Level string `toml:"level"`
}

// Lower configures document lowering.
type Lower struct {
	Workers    int      `toml:"workers"`
	Extensions []string `toml:"extensions"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load parses the configuration file at path. Unknown keys are errors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}

	c.Path = path
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return &c, nil
}

// Find loads FileName from dir, falling back to Default when it does not
// exist.
func Find(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return Load(path)
}

func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Lower.Workers == 0 {
		c.Lower.Workers = runtime.GOMAXPROCS(0)
	}
	if len(c.Lower.Extensions) == 0 {
		c.Lower.Extensions = []string{".yaml", ".yml", ".json", ".cue"}
	}
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.Output.Format != "text" && c.Output.Format != "json" {
		return fmt.Errorf("output.format must be \"text\" or \"json\", got %q", c.Output.Format)
	}
	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.Lower.Workers < 1 {
		return fmt.Errorf("lower.workers must be at least 1, got %d", c.Lower.Workers)
	}
	for _, ext := range c.Lower.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("lower.extensions: %q must start with a dot", ext)
		}
		if _, ok := syntax.FormatForPath(ext); !ok {
			return fmt.Errorf("lower.extensions: no document format for %q", ext)
		}
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	return levels[strings.ToLower(c.Log.Level)]
}

// Accepts reports whether path has one of the configured extensions.
func (c *Config) Accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.Lower.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
