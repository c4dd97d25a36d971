package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the content of a gl.yaml file.
type Config struct {
	// MaxDepth bounds evaluator recursion. Exceeding it is reported as
	// stack exhaustion instead of crashing the host.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// ParserMaxDepth bounds expression nesting while parsing.
	ParserMaxDepth int `yaml:"parser_max_depth,omitempty"`

	// LogPrefix is printed before every line written by the host log function.
	LogPrefix string `yaml:"log_prefix,omitempty"`

	// HistoryFile is the REPL history path. Relative paths are resolved
	// against the user's home directory.
	HistoryFile string `yaml:"history_file,omitempty"`

	// Color is one of auto, always, never.
	Color string `yaml:"color,omitempty"`
}

// Default returns a Config with every field set to its default.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a gl.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses gl.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for gl.yaml starting from dir and walking up
// to parent directories. Returns "" and a nil error if none is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Discover finds and loads the nearest gl.yaml above dir, falling back to
// defaults when there is none.
func Discover(dir string) (*Config, string, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func (c *Config) validate(path string) error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("%s: max_depth must be positive, got %d", path, c.MaxDepth)
	}
	if c.ParserMaxDepth < 0 {
		return fmt.Errorf("%s: parser_max_depth must be positive, got %d", path, c.ParserMaxDepth)
	}
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color must be one of auto, always, never; got %q", path, c.Color)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.ParserMaxDepth == 0 {
		c.ParserMaxDepth = DefaultParserMaxDepth
	}
	if c.LogPrefix == "" {
		c.LogPrefix = DefaultLogPrefix
	}
	if c.HistoryFile == "" {
		c.HistoryFile = DefaultHistoryFile
	}
	if c.Color == "" {
		c.Color = DefaultColor
	}
}

// HistoryPath resolves HistoryFile against home when it is relative.
func (c *Config) HistoryPath(home string) string {
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	return filepath.Join(home, c.HistoryFile)
}
