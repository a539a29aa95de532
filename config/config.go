// Package config loads the settings used by the monkey command and its REPL.
//
// Settings can come from a TOML or YAML file (chosen by extension) and from
// MONKEY_* environment variables, which win over the file. Keys missing from
// the file keep their defaults.
//
//	prompt    = ">> "
//	mode      = "parse"          # or "lex"
//	history   = "~/.monkey_history"
//	color     = true
//	log_level = "warn"
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Mode selects what the REPL does with each line.
type Mode string

const (
	// ModeParse parses each line and prints the rendered program.
	ModeParse Mode = "parse"
	// ModeLex prints every token of each line.
	ModeLex Mode = "lex"
)

// Format is the on-disk format of a config file.
type Format int

const (
	FormatUnknown Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

var (
	// ErrUnsupportedFormat is returned for files that are neither TOML nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported config format")
	// ErrInvalidMode is returned when mode is not "parse" or "lex".
	ErrInvalidMode = errors.New("invalid mode")
)

// Config holds the REPL and CLI settings.
type Config struct {
	Prompt   string `toml:"prompt" yaml:"prompt"`
	Mode     Mode   `toml:"mode" yaml:"mode"`
	History  string `toml:"history" yaml:"history"`
	Color    bool   `toml:"color" yaml:"color"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	history := ".monkey_history"
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, history)
	}
	return Config{
		Prompt:   ">> ",
		Mode:     ModeParse,
		History:  history,
		Color:    true,
		LogLevel: "warn",
	}
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// Load reads path on top of the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := Decode(content, DetectFormat(path), &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.History = expandHome(cfg.History)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode unmarshals content in the given format into cfg. Fields absent from
// content are left untouched.
func Decode(content []byte, format Format, cfg *Config) error {
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return err
		}
	default:
		return ErrUnsupportedFormat
	}
	return nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeParse, ModeLex:
	default:
		return fmt.Errorf("%w %q: want %q or %q", ErrInvalidMode, c.Mode, ModeParse, ModeLex)
	}
	if c.Prompt == "" {
		return errors.New("prompt must not be empty")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log level name to its slog level. The empty string means warn.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelWarn, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("MONKEY_PROMPT"); ok && v != "" {
		c.Prompt = v
	}
	if v, ok := os.LookupEnv("MONKEY_MODE"); ok && v != "" {
		c.Mode = Mode(strings.ToLower(v))
	}
	if v, ok := os.LookupEnv("MONKEY_LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
