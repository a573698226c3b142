// Package config loads base-resolver settings from a YAML file, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"base-resolver/internal/provenance"
)

// FileName is the config file looked up in the working directory.
const FileName = "base-resolver"

// EnvPrefix prefixes environment overrides: BASE_RESOLVER_RESOLVER_NORMALIZE=true.
const EnvPrefix = "BASE_RESOLVER"

// Keys shared with command-line flag bindings.
const (
	KeyNormalize               = "resolver.normalize"
	KeyTolerateMissingAncestor = "resolver.tolerate_missing_ancestor"
	KeyMaxDepth                = "resolver.max_depth"
	KeyFoundationalTypes       = "resolver.foundational_types"
	KeyChoiceTypes             = "resolver.choice_types"
	KeySourcePaths             = "source.paths"
	KeySourceDatabase          = "source.database"
	KeyLogLevel                = "log.level"
	KeyLogDevelopment          = "log.development"
)

// Config represents the base-resolver configuration
type Config struct {
	Resolver ResolverConfig `mapstructure:"resolver"`
	Source   SourceConfig   `mapstructure:"source"`
	Log      LogConfig      `mapstructure:"log"`
}

// ResolverConfig mirrors provenance.Settings plus matcher extensions.
type ResolverConfig struct {
	Normalize               bool     `mapstructure:"normalize"`
	TolerateMissingAncestor bool     `mapstructure:"tolerate_missing_ancestor"`
	MaxDepth                int      `mapstructure:"max_depth"`
	FoundationalTypes       []string `mapstructure:"foundational_types"`
	// ChoiceTypes are extra type names recognized in renamed choice fields.
	ChoiceTypes []string `mapstructure:"choice_types"`
}

// SourceConfig says where definitions come from.
type SourceConfig struct {
	// Paths are YAML bundle files or directories of them.
	Paths []string `mapstructure:"paths"`
	// Database is a SQLite file; it takes precedence over Paths.
	Database string `mapstructure:"database"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// New returns a viper instance with defaults and environment support set
// up. Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	defaults := provenance.DefaultSettings()
	v.SetDefault(KeyNormalize, defaults.Normalize)
	v.SetDefault(KeyTolerateMissingAncestor, defaults.TolerateMissingAncestor)
	v.SetDefault(KeyMaxDepth, defaults.MaxDepth)
	v.SetDefault(KeyFoundationalTypes, defaults.FoundationalTypes)
	v.SetDefault(KeyChoiceTypes, []string{})
	v.SetDefault(KeySourcePaths, []string{})
	v.SetDefault(KeySourceDatabase, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogDevelopment, false)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the configuration. An explicit file must exist; otherwise a
// missing base-resolver.yaml means defaults.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Settings converts the resolver section into provenance settings.
func (c ResolverConfig) Settings() provenance.Settings {
	return provenance.Settings{
		Normalize:               c.Normalize,
		TolerateMissingAncestor: c.TolerateMissingAncestor,
		MaxDepth:                c.MaxDepth,
		FoundationalTypes:       c.FoundationalTypes,
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Resolver.MaxDepth < 0 {
		return fmt.Errorf("resolver.max_depth must not be negative, got: %d", cfg.Resolver.MaxDepth)
	}

	for _, t := range cfg.Resolver.ChoiceTypes {
		if strings.TrimSpace(t) == "" || strings.ContainsAny(t, ".[] ") {
			return fmt.Errorf("resolver.choice_types: invalid type name %q", t)
		}
	}

	return nil
}
