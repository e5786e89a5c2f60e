// Package config holds the optional settings of the ownership demo.
// A missing config file is the same as Default().
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultInitial  = "hello, world"
	DefaultAliases  = 2
	DefaultLogLevel = "warn"

	MaxAliases = 1 << 20
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	// LogLevel is any level logrus can parse. Logs go to stderr.
	LogLevel string `yaml:"log-level"`

	// Initial is the text the value starts with before it is overwritten.
	Initial string `yaml:"initial"`

	// Aliases is how many aliases are emitted after the overwrite.
	Aliases int `yaml:"aliases"`
}

func Default() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Initial:  DefaultInitial,
		Aliases:  DefaultAliases,
	}
}

// Load reads a yaml config file on top of the defaults. An empty path
// returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config file %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes yaml bytes on top of the defaults and validates the result.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Aliases < 1 || c.Aliases > MaxAliases {
		return fmt.Errorf("%w: aliases must be between 1 and %d, got %d", ErrInvalid, MaxAliases, c.Aliases)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Level returns the parsed log level, falling back to warn.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return lvl
}
