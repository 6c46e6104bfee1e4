// Package config loads server settings from defaults, an optional YAML
// file, a .env file and PORTFOLIO_* environment variables.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const envPrefix = "PORTFOLIO_"

type Config struct {
	Port    string `koanf:"port"`
	GinMode string `koanf:"gin_mode"`

	// ContentPath overrides the embedded content tables when set.
	ContentPath string `koanf:"content_path"`

	RevealThreshold float64       `koanf:"reveal_threshold"`
	SubmitLatency   time.Duration `koanf:"submit_latency"`
	DefaultDark     bool          `koanf:"default_dark"`

	// PreferenceDB enables display mode persistence. Empty keeps the
	// mode in memory only.
	PreferenceDB string `koanf:"preference_db"`
	// PreferenceTTL is how long a saved mode survives without being
	// toggled. It matches the visitor cookie lifetime by default.
	PreferenceTTL time.Duration `koanf:"preference_ttl"`

	SessionTTL    time.Duration `koanf:"session_ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

func Default() *Config {
	return &Config{
		Port:            "8080",
		GinMode:         "release",
		RevealThreshold: 0.2,
		SubmitLatency:   1500 * time.Millisecond,
		DefaultDark:     true,
		PreferenceTTL:   365 * 24 * time.Hour,
		SessionTTL:      2 * time.Hour,
		SweepInterval:   10 * time.Minute,
	}
}

// Load builds the configuration. path may be empty or point to a file that
// does not exist.
func Load(path string) (*Config, error) {
	// a missing .env is normal in production
	_ = godotenv.Load()

	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "reading config %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "accessing config %s", path)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, "loading env overrides")
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, "unmarshalling config")
	}

	// plain PORT is what most hosts set
	if port := os.Getenv("PORT"); port != "" && k.String("port") == "" {
		cfg.Port = port
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return errors.Errorf("invalid gin_mode %q: must be one of debug, release, test", c.GinMode)
	}
	if c.RevealThreshold < 0 || c.RevealThreshold > 1 {
		return errors.Errorf("reveal_threshold %v must be within [0,1]", c.RevealThreshold)
	}
	if c.SubmitLatency <= 0 {
		return errors.New("submit_latency must be positive")
	}
	if c.PreferenceTTL <= 0 {
		return errors.New("preference_ttl must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session_ttl must be positive")
	}
	if c.SweepInterval <= 0 {
		return errors.New("sweep_interval must be positive")
	}
	return nil
}

// PreferenceCutoff is the oldest update time a saved preference may have
// at now before it is cleaned up.
func (c *Config) PreferenceCutoff(now time.Time) time.Time {
	return now.Add(-c.PreferenceTTL)
}

// Addr is the listen address.
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
