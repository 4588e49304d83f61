package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the astarviz configuration file.
//
//	rows = 50
//	step_delay = "5ms"
//	log_file = "astarviz.log"
//	log_level = "info"
//
//	[palette]
//	visited = "#ff00ff"
type Config struct {
	Rows      int               `toml:"rows"`
	StepDelay string            `toml:"step_delay"`
	LogFile   string            `toml:"log_file"`
	LogLevel  string            `toml:"log_level"`
	Palette   map[string]string `toml:"palette"`
}

// DefaultConfig matches the classic visualizer: a 50×50 grid in its colors.
func DefaultConfig() Config {
	return Config{
		Rows:      50,
		StepDelay: "0s",
		LogLevel:  "info",
		Palette: map[string]string{
			"free":     "#ffffff",
			"blocked":  "#000000",
			"start":    "#6400ff",
			"end":      "#ffa500",
			"frontier": "#00ff00",
			"visited":  "#ff00ff",
			"path":     "#33ffff",
		},
	}
}

// LoadConfig reads path over the defaults. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	cfg.merge(file)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// merge copies the values set in other over c.
func (c *Config) merge(other Config) {
	if other.Rows != 0 {
		c.Rows = other.Rows
	}
	if other.StepDelay != "" {
		c.StepDelay = other.StepDelay
	}
	if other.LogFile != "" {
		c.LogFile = other.LogFile
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	for name, color := range other.Palette {
		c.Palette[name] = color
	}
}

// Settings are the parsed, ready-to-use values of a Config.
type Settings struct {
	Delay   time.Duration
	Level   slog.Level
	Palette Palette
}

// Resolve parses every field that can be wrong.
func (c Config) Resolve() (Settings, error) {
	var s Settings
	if c.Rows <= 0 {
		return s, fmt.Errorf("rows must be positive, got %d", c.Rows)
	}
	var err error
	if s.Delay, err = c.Delay(); err != nil {
		return s, err
	}
	if s.Level, err = parseLevel(c.LogLevel); err != nil {
		return s, err
	}
	if s.Palette, err = NewPalette(c.Palette); err != nil {
		return s, err
	}
	return s, nil
}

// Validate reports whether Resolve would succeed.
func (c Config) Validate() error {
	_, err := c.Resolve()
	return err
}

// Delay returns the pause after each search step.
func (c Config) Delay() (time.Duration, error) {
	d, err := time.ParseDuration(c.StepDelay)
	if err != nil {
		return 0, fmt.Errorf("step_delay: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("step_delay must not be negative, got %v", d)
	}
	return d, nil
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// openLogger returns a text logger writing to the configured file, or a
// discarding logger when no file is set. The terminal belongs to the grid.
func openLogger(c Config) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if c.LogFile == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}
