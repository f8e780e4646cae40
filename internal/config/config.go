// Package config loads healthq settings from healthq.toml and HEALTHQ_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the healthq configuration.
type Config struct {
	Fixture   string         `mapstructure:"fixture"`
	Engine    string         `mapstructure:"engine"`
	Available bool           `mapstructure:"available"`
	Timeout   time.Duration  `mapstructure:"timeout"`
	Log       LogConfig      `mapstructure:"log"`
	Activity  ActivityConfig `mapstructure:"activity"`
	Metrics   MetricsConfig  `mapstructure:"metrics"`
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ActivityConfig controls activity events printed by the CLI.
type ActivityConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Channel string `mapstructure:"channel"`
	ActorID string `mapstructure:"actor_id"`
}

// MetricsConfig controls the metrics dump after each command.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SetDefaults configures default values for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("fixture", "")
	v.SetDefault("engine", "expr")
	v.SetDefault("available", true)
	v.SetDefault("timeout", 5*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("activity.enabled", false)
	v.SetDefault("activity.channel", "healthq")
	v.SetDefault("activity.actor_id", "")

	v.SetDefault("metrics.enabled", false)
}

// New returns a viper instance with defaults and HEALTHQ_ env binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("HEALTHQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads path, or healthq.toml from the working directory when path is
// empty. A missing default file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = New()
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("healthq")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}
