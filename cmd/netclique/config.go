package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config controls an analysis run. It can be loaded from YAML; flags set on
// the command line take precedence.
type Config struct {
	Sep       string        `yaml:"sep"`
	Prefix    string        `yaml:"prefix"`
	Delimiter string        `yaml:"delimiter"`
	Parallel  bool          `yaml:"parallel"`
	Workers   int           `yaml:"workers"`
	Timeout   time.Duration `yaml:"timeout"`
	Format    string        `yaml:"format"`
	All       bool          `yaml:"all"`
	LogLevel  string        `yaml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		Sep:       "-",
		Prefix:    "t",
		Delimiter: ",",
		Format:    "text",
		LogLevel:  "warn",
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var errs []error
	if c.Sep == "" {
		errs = append(errs, errors.New("sep must not be empty"))
	}
	switch c.Format {
	case "text", "yaml":
	default:
		errs = append(errs, fmt.Errorf("unknown format %q", c.Format))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must be >= 0, got %v", c.Timeout))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}
