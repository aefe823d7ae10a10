// Package config loads glossy.toml, the optional settings file shared by the
// command line tools and the web service.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is read from the working directory when no file is named
const DefaultFile = "glossy.toml"

// Config holds every setting. Zero values are never used directly; Default
// fills them and a file overrides what it sets.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Compile CompileConfig `toml:"compile"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig configures the web service
type ServerConfig struct {
	Port      int    `toml:"port"`
	ScenesDir string `toml:"scenes_dir"` // empty means search the usual locations
}

// CompileConfig configures the compile and watch commands
type CompileConfig struct {
	Output string `toml:"output"` // empty means stdout
}

// LogConfig configures logging
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn or error
}

// Default returns the settings used when there is no file
func Default() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads the file at path on top of the defaults
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load, except a missing file yields the defaults
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Decode reads TOML settings on top of the defaults. Unknown keys are an
// error so typos do not go unnoticed.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("invalid config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [0, 65535], got %d", c.Server.Port)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Encode writes the settings as TOML
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// SlogLevel parses Level
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Level))); err != nil {
		return 0, fmt.Errorf("log.level must be one of debug, info, warn, error: got %q", c.Level)
	}
	return level, nil
}

// NewLogger builds the text logger every command uses
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
