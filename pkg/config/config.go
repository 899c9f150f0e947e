// Package config loads tikzlayout settings.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. the TOML config file, $XDG_CONFIG_HOME/tikzlayout/config.toml unless
//     --config names another
//  3. TIKZLAYOUT_* environment variables
//  4. command-line flags (applied by the CLI)
//
// An example file:
//
//	[render]
//	engine = "lualatex"
//	formats = ["tex", "pdf"]
//
//	[cache]
//	ttl = "72h"
//
//	[server]
//	addr = ":9000"
//	redis_addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/matzehuels/tikzlayout/pkg/cache"
	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/pipeline"
	"github.com/matzehuels/tikzlayout/pkg/tikz"
)

const (
	// AppName names the config and cache directories.
	AppName = "tikzlayout"

	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "TIKZLAYOUT"
)

// Config is the complete settings tree.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// RenderConfig controls the pipeline.
type RenderConfig struct {
	Engine      string   `toml:"engine"`
	Formats     []string `toml:"formats"`
	ProbeImages bool     `toml:"probe_images"`
}

// CacheConfig controls the CLI's file cache.
type CacheConfig struct {
	Disabled bool          `toml:"disabled"`
	Dir      string        `toml:"dir"`
	TTL      time.Duration `toml:"ttl"`
}

// ServerConfig controls `tikzlayout serve`.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	MaxBodyBytes  int64  `toml:"max_body_bytes"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	KeyPrefix     string `toml:"key_prefix"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Engine:  tikz.DefaultEngine,
			Formats: []string{pipeline.DefaultFormat},
		},
		Cache: CacheConfig{
			Dir: DefaultCacheDir(),
			TTL: cache.TTLArtifact,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
			KeyPrefix:    AppName + ":",
		},
		Log: LogConfig{Level: "info"},
	}
}

// envOverrides is the flat environment view of Config.
type envOverrides struct {
	Engine        string        `envconfig:"PDFLATEX"`
	Formats       []string      `envconfig:"FORMATS"`
	ProbeImages   bool          `envconfig:"PROBE_IMAGES"`
	NoCache       bool          `envconfig:"NO_CACHE"`
	CacheDir      string        `envconfig:"CACHE_DIR"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL"`
	Addr          string        `envconfig:"ADDR"`
	MaxBodyBytes  int64         `envconfig:"MAX_BODY_BYTES"`
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB"`
	KeyPrefix     string        `envconfig:"KEY_PREFIX"`
	LogLevel      string        `envconfig:"LOG_LEVEL"`
}

// Load reads the config file at path over the defaults and then applies
// the environment. An empty path reads the default location, where a
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path).WithOp("config")
		}
		return nil
	}
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "read %s", path).WithOp("config")
	}
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "parse %s", path).WithOp("config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errs.New(errs.ErrCodeInvalidInput, "%s: unknown key %q", path, undecoded[0].String()).WithOp("config")
	}
	return nil
}

// ApplyEnv overrides settings from TIKZLAYOUT_* variables that are set.
func (c *Config) ApplyEnv() error {
	e := envOverrides{
		Engine:        c.Render.Engine,
		Formats:       c.Render.Formats,
		ProbeImages:   c.Render.ProbeImages,
		NoCache:       c.Cache.Disabled,
		CacheDir:      c.Cache.Dir,
		CacheTTL:      c.Cache.TTL,
		Addr:          c.Server.Addr,
		MaxBodyBytes:  c.Server.MaxBodyBytes,
		RedisAddr:     c.Server.RedisAddr,
		RedisPassword: c.Server.RedisPassword,
		RedisDB:       c.Server.RedisDB,
		KeyPrefix:     c.Server.KeyPrefix,
		LogLevel:      c.Log.Level,
	}
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "environment").WithOp("config")
	}
	c.Render = RenderConfig{Engine: e.Engine, Formats: e.Formats, ProbeImages: e.ProbeImages}
	c.Cache = CacheConfig{Disabled: e.NoCache, Dir: e.CacheDir, TTL: e.CacheTTL}
	c.Server = ServerConfig{
		Addr:          e.Addr,
		MaxBodyBytes:  e.MaxBodyBytes,
		RedisAddr:     e.RedisAddr,
		RedisPassword: e.RedisPassword,
		RedisDB:       e.RedisDB,
		KeyPrefix:     e.KeyPrefix,
	}
	c.Log.Level = e.LogLevel
	return nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Render.Engine == "" {
		return errs.New(errs.ErrCodeInvalidInput, "render.engine cannot be empty").WithOp("config")
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "render.formats").WithOp("config")
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache.ttl cannot be negative").WithOp("config")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "server.max_body_bytes must be positive").WithOp("config")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errs.New(errs.ErrCodeInvalidInput, "log.level %q is not one of debug, info, warn, error", c.Log.Level).WithOp("config")
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/tikzlayout/config.toml, falling back
// to ~/.config. It returns "" when no home directory is known.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName, "config.toml")
}

// DefaultCacheDir returns $XDG_CACHE_HOME/tikzlayout, falling back to
// ~/.cache.
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", AppName)
}
