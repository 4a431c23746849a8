// Package config loads progresstwin settings from a TOML or YAML file.
//
// Every field has a default, so an absent file and an empty file behave the
// same. Command-line flags override file values; the CLI applies them
// after [Load].
//
//	# progresstwin.toml
//	dataset = "site/progress.xlsx"
//	rules_file = "rules.toml"
//
//	[synth]
//	spacing = 30
//	language = "tr"
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":9090"
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/interact"
	"github.com/matzehuels/progresstwin/pkg/roles"
	"github.com/matzehuels/progresstwin/pkg/synth"
)

// AppName names the cache directory and default config file.
const AppName = "progresstwin"

// Config holds every file-configurable setting.
type Config struct {
	// Dataset is the default dataset source (file path or mongodb:// URI).
	Dataset string `toml:"dataset" yaml:"dataset"`
	// RulesFile is a TOML role table replacing the built-in bridge rules.
	// Relative paths are resolved against the config file's directory.
	RulesFile string `toml:"rules_file" yaml:"rules_file"`

	Synth  synth.Options `toml:"synth" yaml:"synth"`
	Cache  CacheConfig   `toml:"cache" yaml:"cache"`
	Server ServerConfig  `toml:"server" yaml:"server"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	// Disabled turns caching off.
	Disabled bool `toml:"disabled" yaml:"disabled"`
	// Dir is the file cache directory (default: XDG cache home).
	Dir string `toml:"dir" yaml:"dir"`
	// RedisURL selects a Redis cache instead of the file cache.
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
	// Prefix namespaces Redis keys.
	Prefix string `toml:"prefix" yaml:"prefix"`
	// Compress stores entries zstd-compressed (default true).
	Compress *bool `toml:"compress" yaml:"compress"`
}

// ServerConfig tunes the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `toml:"addr" yaml:"addr"`
	// ClickChannel is the Redis channel click events are published on
	// when a Redis URL is configured.
	ClickChannel string `toml:"click_channel" yaml:"click_channel"`
	// ReadTimeout bounds reading a request (default 10s).
	ReadTimeout time.Duration `toml:"read_timeout" yaml:"read_timeout"`
	// WriteTimeout bounds writing a response (default 60s).
	WriteTimeout time.Duration `toml:"write_timeout" yaml:"write_timeout"`
}

// ShouldCompress reports whether cache entries are compressed.
func (c CacheConfig) ShouldCompress() bool {
	return c.Compress == nil || *c.Compress
}

// Default returns a configuration with every default applied.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	c.Synth.SetDefaults()
	if c.Cache.Dir == "" {
		c.Cache.Dir = DefaultCacheDir()
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = AppName + ":"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ClickChannel == "" {
		c.Server.ClickChannel = interact.DefaultChannel
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
}

// Load reads a .toml, .yaml or .yml file, loads the referenced rule file,
// applies defaults and validates the result. Unknown keys are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing config file")
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %s", keys[0])
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing config file")
		}
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", ext)
	}

	if cfg.RulesFile != "" {
		rulesPath := cfg.RulesFile
		if !filepath.IsAbs(rulesPath) {
			rulesPath = filepath.Join(filepath.Dir(path), rulesPath)
		}
		rs, err := roles.LoadRules(rulesPath)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "rules file %s", cfg.RulesFile)
		}
		cfg.Synth.Rules = rs
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that defaults cannot repair.
func (c Config) Validate() error {
	if err := errors.ValidateLanguage(c.Synth.Language); err != nil {
		return err
	}
	if c.Cache.RedisURL != "" {
		if err := errors.ValidateURL(c.Cache.RedisURL, "redis", "rediss"); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.redis_url")
		}
	}
	return nil
}

// DefaultCacheDir returns the cache directory using XDG standard
// (~/.cache/progresstwin/).
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(home, ".cache", AppName)
}

// Find returns the first of progresstwin.toml, progresstwin.yaml and
// progresstwin.yml present in dir, or "".
func Find(dir string) string {
	for _, ext := range []string{".toml", ".yaml", ".yml"} {
		p := filepath.Join(dir, AppName+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
