package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/speakeasy-api/polycalc/machine"
	"github.com/speakeasy-api/polycalc/pkg/polyfmt"
)

// Config is the calculator configuration. It is read from an optional
// YAML file; command-line flags override it.
//
// Example:
//
//	log_level: debug
//	time_format: "%H:%M:%S"
//	verbose: true
//	color: never
//	dump_stack: stack.yaml
//	vars: [x, y, z]
type Config struct {
	LogLevel   string   `yaml:"log_level"`
	TimeFormat string   `yaml:"time_format"`
	Verbose    bool     `yaml:"verbose"`
	Color      string   `yaml:"color"`
	DumpStack  string   `yaml:"dump_stack"`
	History    string   `yaml:"history"`
	StackCap   int      `yaml:"stack_capacity"`
	Vars       []string `yaml:"vars"`
	Compact    bool     `yaml:"compact"`
}

func defaultConfig() Config {
	return Config{
		TimeFormat: machine.DefaultTimeFormat,
		Color:      "auto",
		StackCap:   machine.DefaultOptions().InitialStackCap,
	}
}

// loadConfig reads path over the defaults. Unknown keys are rejected.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	if err := decodeConfig(f, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c Config) validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q; valid modes: auto, always, never", c.Color)
	}
	switch c.LogLevel {
	case "", "error", "warn", "warning", "info", "debug":
	default:
		return fmt.Errorf("invalid log level %q; valid levels: error, warn, info, debug", c.LogLevel)
	}
	if c.StackCap < 0 {
		return fmt.Errorf("invalid stack capacity %d", c.StackCap)
	}
	if _, err := polyfmt.ValidateConfig(c.fmtConfig()); err != nil {
		return err
	}
	return nil
}

func (c Config) fmtConfig() polyfmt.PolyFmtCfg {
	return polyfmt.PolyFmtCfg{Vars: c.Vars, Compact: c.Compact}
}

// useColor resolves the color mode for a diagnostic stream.
func (c Config) useColor(terminal bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok && c.Color != "always" {
		return false
	}
	switch c.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return terminal
}

func (c Config) machineOptions(color bool, logw io.Writer) machine.Options {
	opts := machine.DefaultOptions()
	opts.LogLevel = c.LogLevel
	opts.LogTimeFormat = c.TimeFormat
	opts.LogWriter = logw
	opts.Verbose = c.Verbose
	opts.Color = color
	if c.StackCap > 0 {
		opts.InitialStackCap = c.StackCap
	}
	return opts
}
