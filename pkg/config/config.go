// Package config loads trip settings from `.trip.yaml`, TRIP_* environment
// variables and defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	DefaultPath         = "~/.trip.db"
	DefaultBlockerLower = 350 * time.Millisecond
	DefaultBlockerUpper = time.Second
)

// Config is the resolved configuration shared by commands and the UI.
type Config struct {
	Path string

	BlockerLower time.Duration
	BlockerUpper time.Duration

	RemoteLatency  time.Duration
	RemoteFailRate float64

	LogFile  string
	LogLevel string
}

// BasePath satisfies store.Config.
func (c *Config) BasePath() string {
	return c.Path
}

// Load reads configuration into a fresh viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom reads configuration using v. Tests hand in their own instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	v.SetDefault("path", DefaultPath)
	v.SetDefault("blocker.lower", DefaultBlockerLower)
	v.SetDefault("blocker.upper", DefaultBlockerUpper)
	v.SetDefault("remote.latency", time.Duration(0))
	v.SetDefault("remote.fail_rate", 0.0)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetConfigName(".trip") // .yaml is implicit
	v.SetEnvPrefix("TRIP")
	v.AutomaticEnv()

	if override := os.Getenv("TRIP_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	cfg := &Config{
		Path:           path,
		BlockerLower:   v.GetDuration("blocker.lower"),
		BlockerUpper:   v.GetDuration("blocker.upper"),
		RemoteLatency:  v.GetDuration("remote.latency"),
		RemoteFailRate: v.GetFloat64("remote.fail_rate"),
		LogFile:        v.GetString("log.file"),
		LogLevel:       v.GetString("log.level"),
	}
	if logFile := cfg.LogFile; logFile != "" {
		if cfg.LogFile, err = homedir.Expand(logFile); err != nil {
			return nil, fmt.Errorf("config: expand log file: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.BlockerLower < 0 || c.BlockerUpper <= 0 {
		return fmt.Errorf("config: blocker limits must be positive (lower=%s upper=%s)", c.BlockerLower, c.BlockerUpper)
	}
	if c.BlockerLower > c.BlockerUpper {
		return fmt.Errorf("config: blocker.lower %s exceeds blocker.upper %s", c.BlockerLower, c.BlockerUpper)
	}
	if c.RemoteFailRate < 0 || c.RemoteFailRate > 1 {
		return fmt.Errorf("config: remote.fail_rate %v outside [0,1]", c.RemoteFailRate)
	}
	if c.RemoteLatency < 0 {
		return fmt.Errorf("config: remote.latency %s is negative", c.RemoteLatency)
	}
	return nil
}
