// Package config handles configuration loading and validation for glosser.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "250ms" or "10s", or from plain integer nanoseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	*d = Duration(n)
	return nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the application configuration.
type Config struct {
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Store      StoreConfig      `yaml:"store"`
	Selection  SelectionConfig  `yaml:"selection"`
	Server     ServerConfig     `yaml:"server"`
	HTTP       HTTPConfig       `yaml:"http"`
}

// DictionaryConfig configures the definition lookup client.
type DictionaryConfig struct {
	BaseURL  string   `yaml:"base_url"`
	Timeout  Duration `yaml:"timeout"`
	CacheTTL Duration `yaml:"cache_ttl"`
}

// StoreConfig configures the vocabulary database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// SelectionConfig configures selection handling.
type SelectionConfig struct {
	SettleDelay Duration `yaml:"settle_delay"`
}

// ServerConfig configures the vocabulary API server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// HTTPConfig configures the page fetcher.
type HTTPConfig struct {
	Timeout      Duration `yaml:"timeout"`
	MaxRedirects int      `yaml:"max_redirects"`
	UserAgent    string   `yaml:"user_agent"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Dictionary: DictionaryConfig{
			BaseURL:  "https://api.dictionaryapi.dev/api/v2/entries/en",
			Timeout:  Duration(10 * time.Second),
			CacheTTL: Duration(10 * time.Minute),
		},
		Store: StoreConfig{
			Path: defaultStorePath(),
		},
		Selection: SelectionConfig{
			SettleDelay: Duration(250 * time.Millisecond),
		},
		Server: ServerConfig{
			Addr: ":8470",
		},
		HTTP: HTTPConfig{
			Timeout:      Duration(30 * time.Second),
			MaxRedirects: 10,
			UserAgent:    "Glosser/1.0",
		},
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "glosser.db"
	}
	return filepath.Join(home, ".glosser", "vocab.db")
}

// Load reads configuration from the given path. An empty or missing path
// returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Dictionary.BaseURL == "" {
		c.Dictionary.BaseURL = defaults.Dictionary.BaseURL
	}
	if c.Dictionary.Timeout == 0 {
		c.Dictionary.Timeout = defaults.Dictionary.Timeout
	}
	if c.Dictionary.CacheTTL == 0 {
		c.Dictionary.CacheTTL = defaults.Dictionary.CacheTTL
	}
	if c.Store.Path == "" {
		c.Store.Path = defaults.Store.Path
	}
	if c.Selection.SettleDelay == 0 {
		c.Selection.SettleDelay = defaults.Selection.SettleDelay
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = defaults.HTTP.Timeout
	}
	if c.HTTP.MaxRedirects == 0 {
		c.HTTP.MaxRedirects = defaults.HTTP.MaxRedirects
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = defaults.HTTP.UserAgent
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Dictionary.Timeout < 0 {
		return fmt.Errorf("dictionary timeout cannot be negative")
	}
	if c.Selection.SettleDelay < 0 {
		return fmt.Errorf("selection settle_delay cannot be negative")
	}
	if c.HTTP.MaxRedirects < 0 {
		return fmt.Errorf("http max_redirects cannot be negative")
	}
	return nil
}
