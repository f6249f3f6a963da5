// Package cli implements the depgraph command-line interface.
//
// # Commands
//
//   - analyze: load a graph and visualize it, walk it or compute its load order
//   - serve: run the HTTP API
//   - cache: manage the registry response cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs pipeline, cache and registry events through the observability hooks.
//
// # Configuration
//
// Defaults come from a TOML file (--config, default
// $XDG_CONFIG_HOME/depgraph/config.toml). Flags override file values.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depgraph/pkg/buildinfo"
	"github.com/matzehuels/depgraph/pkg/cache"
	"github.com/matzehuels/depgraph/pkg/observability"
	"github.com/matzehuels/depgraph/pkg/pipeline"
	"github.com/matzehuels/depgraph/pkg/render/d2"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "depgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configFile string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level. At debug level the observability
// hooks log pipeline, cache and registry events.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.SetPipelineHooks(&logHooks{logger: c.Logger})
		observability.SetCacheHooks(&logHooks{logger: c.Logger})
		observability.SetHTTPHooks(&logHooks{logger: c.Logger})
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "depgraph analyzes package dependency graphs",
		Long:         `depgraph loads a dependency graph from a test description, a Cargo manifest, a JSON document or crates.io, then draws it, walks it breadth-first or computes the order packages must be loaded in.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/depgraph/config.toml)")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file into c.config.
func (c *CLI) loadConfig() error {
	path, explicit := c.configFile, c.configFile != ""
	if !explicit {
		var err error
		if path, err = configPath(); err != nil {
			c.Logger.Debug("no config directory", "err", err)
			path = ""
		}
	}

	cfg, unknown, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	for _, key := range unknown {
		c.Logger.Warn("unknown config key", "key", key, "file", path)
	}
	c.config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The caller closes the
// runner's cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	runner := pipeline.NewRunner(c.newCache(ctx, noCache), c.Logger)
	runner.CacheTTL = c.config.Cache.TTL
	runner.D2 = d2.Binary{Path: c.config.Render.D2Path}
	return runner
}

// newCache opens the configured cache backend. A backend that cannot be
// opened degrades to the next simpler one with a warning: redis to file,
// file to none.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	cfg := c.config.Cache
	if noCache || cfg.Backend == backendNone {
		return cache.NewNullCache()
	}

	if cfg.Backend == backendRedis {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err == nil {
			c.Logger.Debug("using redis cache", "addr", cfg.RedisAddr)
			return rc
		}
		c.Logger.Warn("redis cache unavailable, using file cache", "addr", cfg.RedisAddr, "err", err)
	}

	fc, err := c.openFileCache()
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

func (c *CLI) openFileCache() (*cache.FileCache, error) {
	dir := c.config.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return nil, err
		}
	}
	return cache.NewFileCache(dir)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
