package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depgraph/internal/server"
	"github.com/matzehuels/depgraph/pkg/deps"
	"github.com/matzehuels/depgraph/pkg/errors"
	"github.com/matzehuels/depgraph/pkg/integrations/crates"
	"github.com/matzehuels/depgraph/pkg/pipeline"
)

// Cache backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

var cacheBackends = []string{backendFile, backendRedis, backendNone}

// envRedisAddr overrides cache.redis_addr from the config file.
const envRedisAddr = "DEPGRAPH_REDIS_ADDR"

// Config holds defaults read from the TOML config file. Command-line flags
// take precedence over every value.
//
//	[registry]
//	url = "https://crates.io/api/v1"
//
//	[cache]
//	backend = "redis"
//	ttl = "12h"
//	redis_addr = "localhost:6379"
//
//	[render]
//	renderer = "graphviz"
//
//	[server]
//	addr = "0.0.0.0:8080"
type Config struct {
	Registry RegistryConfig `toml:"registry"`
	Cache    CacheConfig    `toml:"cache"`
	Render   RenderConfig   `toml:"render"`
	Server   ServerConfig   `toml:"server"`
}

// RegistryConfig configures the crates.io client.
type RegistryConfig struct {
	URL string `toml:"url"`
}

// CacheConfig selects and configures the registry response cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"` // file, redis or none
	TTL           time.Duration `toml:"ttl"`
	Dir           string        `toml:"dir"` // file backend; default under XDG_CACHE_HOME
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
}

// RenderConfig configures image rendering.
type RenderConfig struct {
	Renderer string `toml:"renderer"`
	D2Path   string `toml:"d2_path"` // d2 executable, default from PATH
}

// ServerConfig configures "depgraph serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Registry: RegistryConfig{URL: crates.DefaultBaseURL},
		Cache:    CacheConfig{Backend: backendFile, TTL: deps.DefaultCacheTTL},
		Render:   RenderConfig{Renderer: pipeline.RendererD2},
		Server:   ServerConfig{Addr: server.DefaultAddr},
	}
}

// loadConfig reads the config file at path on top of the defaults. A missing
// file is only an error when the path was given explicitly. Unknown keys are
// returned so the caller can warn about them.
func loadConfig(path string, explicit bool) (Config, []string, error) {
	cfg := defaultConfig()
	var unknown []string

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case err == nil:
			for _, k := range md.Undecoded() {
				unknown = append(unknown, k.String())
			}
		case os.IsNotExist(err) && !explicit:
		case os.IsNotExist(err):
			return cfg, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "config file %s", path)
		default:
			return cfg, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
		}
	}

	if addr := os.Getenv(envRedisAddr); addr != "" {
		cfg.Cache.RedisAddr = addr
	}
	if err := cfg.validate(); err != nil {
		return cfg, unknown, err
	}
	return cfg, unknown, nil
}

func (c *Config) validate() error {
	c.Cache.Backend = strings.ToLower(c.Cache.Backend)
	if !slices.Contains(cacheBackends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid cache backend: %q (must be one of: %s)", c.Cache.Backend, strings.Join(cacheBackends, ", "))
	}
	if c.Cache.Backend == backendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache backend redis requires cache.redis_addr or %s", envRedisAddr)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative, got %s", c.Cache.TTL)
	}
	if err := pipeline.ValidateRenderer(c.Render.Renderer); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := errors.ValidateURL(c.Registry.URL); err != nil {
		return fmt.Errorf("config: registry url: %w", err)
	}
	return nil
}

// configPath returns the default config file location
// ($XDG_CONFIG_HOME/depgraph/config.toml).
func configPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/depgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
