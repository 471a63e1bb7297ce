// Package config loads application settings from, in order of precedence:
// built-in defaults, a YAML config file, LINGU_* environment variables and
// command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/Marcel-2025/Lingu-V.2/internal/domain"
)

const envPrefix = "LINGU_"

// Config holds every runtime setting of the app.
type Config struct {
	DB       string   `koanf:"db" validate:"required"`
	Listen   string   `koanf:"listen" validate:"required,hostname_port"`
	Username string   `koanf:"username" validate:"required"`
	Native   string   `koanf:"native" validate:"required"`
	Target   string   `koanf:"target" validate:"required,oneof=de es fr it"`
	Goal     int      `koanf:"goal" validate:"required,min=1"`
	Repos    string   `koanf:"repos" validate:"required"`
	Sources  []string `koanf:"sources"`
}

// TargetLang returns the configured target language.
func (c *Config) TargetLang() domain.Language {
	return domain.Language(c.Target)
}

var validate = validator.New()

// Flags defines the command-line flags with their default values. The flag
// names double as config keys, so the same setting can come from the YAML
// file, the environment or the command line.
func Flags() *pflag.FlagSet {
	f := pflag.NewFlagSet("lingu", pflag.ExitOnError)
	f.String("config", "", "Path to a YAML config file")
	f.String("db", "lingu.db", "Path to the SQLite database file")
	f.String("listen", "127.0.0.1:8484", "Address the web UI listens on")
	f.String("username", "learner", "Learner name shown in the profile")
	f.String("native", "en", "Native language code")
	f.String("target", string(domain.German), "Target language code (de, es, fr, it)")
	f.Int("goal", 20, "Daily review goal")
	f.String("repos", "repos", "Directory git pack sources are checked out into")
	f.StringSlice("sources", nil, "Pack sources (local directories or git URLs)")
	return f
}

// Load layers the configuration and validates the result. flags must already
// be parsed.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path, _ := flags.GetString("config"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flag config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
