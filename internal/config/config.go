// Package config loads findr settings from a YAML file, the environment and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/taigrr/findr/internal/entry"
	"github.com/taigrr/findr/internal/output"
	"github.com/taigrr/findr/internal/types"
)

// EnvPrefix prefixes every environment override, e.g. FINDR_MAX_DEPTH.
const EnvPrefix = "FINDR"

// Keys shared by the config file, the environment and the flag set.
const (
	KeyName     = "name"
	KeyType     = "type"
	KeyMaxDepth = "max-depth"
	KeyFormat   = "format"
	KeyLogLevel = "log-level"
)

// Config holds the settings for one invocation.
type Config struct {
	Names    []string
	Types    []string
	MaxDepth int
	Format   string
	LogLevel string
}

// Load reads configuration. When path is empty, findr.yaml is looked up in
// the working directory and the user config directory; a missing file there
// is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyMaxDepth, -1)
	v.SetDefault(KeyFormat, string(output.Plain))
	v.SetDefault(KeyLogLevel, "warn")

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("findr")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "findr"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return &Config{
		Names:    v.GetStringSlice(KeyName),
		Types:    splitList(v.GetStringSlice(KeyType)),
		MaxDepth: v.GetInt(KeyMaxDepth),
		Format:   v.GetString(KeyFormat),
		LogLevel: v.GetString(KeyLogLevel),
	}, nil
}

// ApplyFlags overrides settings with every flag the user set explicitly.
// The name flag must be a string array so patterns containing commas
// survive intact.
func (c *Config) ApplyFlags(flags *pflag.FlagSet) error {
	var err error
	if flags.Changed(KeyName) {
		if c.Names, err = flags.GetStringArray(KeyName); err != nil {
			return err
		}
	}
	if flags.Changed(KeyType) {
		if c.Types, err = flags.GetStringSlice(KeyType); err != nil {
			return err
		}
	}
	if flags.Changed(KeyMaxDepth) {
		if c.MaxDepth, err = flags.GetInt(KeyMaxDepth); err != nil {
			return err
		}
	}
	if flags.Changed(KeyFormat) {
		if c.Format, err = flags.GetString(KeyFormat); err != nil {
			return err
		}
	}
	if flags.Changed(KeyLogLevel) {
		if c.LogLevel, err = flags.GetString(KeyLogLevel); err != nil {
			return err
		}
	}
	return nil
}

// Validate rejects unknown entry types, output formats and log levels.
func (c *Config) Validate() error {
	if _, err := entry.ParseKinds(c.Types); err != nil {
		return err
	}
	if _, err := output.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Logger returns a text logger on stderr at the configured level.
func (c *Config) Logger() (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

// Params builds find parameters for the given roots.
func (c *Config) Params(paths []string) types.FindParams {
	return types.FindParams{
		Paths:    paths,
		Names:    c.Names,
		Types:    c.Types,
		MaxDepth: c.MaxDepth,
	}
}

// splitList splits comma-separated items, as in "-t f,d".
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for part := range strings.SplitSeq(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
