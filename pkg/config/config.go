package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/lcalzada-xor/framestrip/pkg/security"
	"github.com/spf13/viper"
)

// Config is the file and environment backed configuration. Command line
// flags are applied on top of it by the CLI.
type Config struct {
	Concurrency int           `mapstructure:"concurrency"`
	Timeout     time.Duration `mapstructure:"timeout"`
	RateLimit   float64       `mapstructure:"rate_limit"`
	Proxy       string        `mapstructure:"proxy"`
	MaxReceiver int           `mapstructure:"max_receiver"`
	Verbose     int           `mapstructure:"verbose"`
	Format      string        `mapstructure:"format"`
	HTML        bool          `mapstructure:"html"`
	Verify      bool          `mapstructure:"verify"`
	Serve       ServeConfig   `mapstructure:"serve"`
}

// ServeConfig configures the rewriting proxy.
type ServeConfig struct {
	Listen   string `mapstructure:"listen"`
	Target   string `mapstructure:"target"`
	HTMLMode string `mapstructure:"html_mode"`
	Disabled bool   `mapstructure:"disabled"`
}

// SetDefaults registers the default of every key, which also makes the
// keys visible to environment lookup.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("proxy", "")
	v.SetDefault("max_receiver", security.DefaultMaxReceiverSize)
	v.SetDefault("verbose", 0)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("html", false)
	v.SetDefault("verify", false)
	v.SetDefault("serve.listen", DefaultListen)
	v.SetDefault("serve.target", "")
	v.SetDefault("serve.html_mode", DefaultHTMLMode)
	v.SetDefault("serve.disabled", false)
}

// Load reads defaults, the optional YAML file at path and FRAMESTRIP_*
// environment variables, in increasing order of precedence.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values Load cannot type-check.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	switch c.Serve.HTMLMode {
	case "scripts", "document", "off":
	default:
		return fmt.Errorf("serve.html_mode must be scripts, document or off, got %q", c.Serve.HTMLMode)
	}
	switch c.Format {
	case "url", "human", "json", "table":
	default:
		return fmt.Errorf("format must be url, human, json or table, got %q", c.Format)
	}
	return nil
}
