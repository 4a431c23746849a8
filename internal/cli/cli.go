package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/progresstwin/pkg/buildinfo"
	"github.com/matzehuels/progresstwin/pkg/cache"
	"github.com/matzehuels/progresstwin/pkg/config"
	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

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
	Config config.Config

	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Progresstwin builds digital twins of bridges and culverts from progress matrices",
		Long: `Progresstwin turns a construction progress matrix into a clickable 3D twin:
every structural element is drawn where it stands and colored by the
completion status of the cell it belongs to.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return c.loadConfig() },
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: ./progresstwin.toml when present)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the scene and artifact cache")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.rolesCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or progresstwin.{toml,yaml,yml} in the
// working directory, over the defaults.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		path = config.Find(".")
	}
	if path == "" {
		return nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache opens the configured cache. An unusable file cache directory
// degrades to no caching; an unreachable Redis is an error.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.Config.Cache
	if c.noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}

	var inner cache.Cache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		inner = rc
	} else {
		fc, err := cache.NewFileCache(c.cacheDir())
		if err != nil {
			c.Logger.Warn("cache disabled", "dir", c.cacheDir(), "err", err)
			return cache.NewNullCache(), nil
		}
		inner = fc
	}

	if !cfg.ShouldCompress() {
		return inner, nil
	}
	compressed, err := cache.NewCompressed(inner)
	if err != nil {
		inner.Close()
		return nil, err
	}
	return compressed, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, by default the XDG one
// (~/.cache/progresstwin/).
func (c *CLI) cacheDir() string {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir
	}
	return config.DefaultCacheDir()
}

// =============================================================================
// Dataset Helpers
// =============================================================================

// datasetArg returns the dataset named on the command line, falling back to
// the configured one.
func (c *CLI) datasetArg(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if c.Config.Dataset != "" {
		return c.Config.Dataset, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "no dataset given and none configured")
}

// loadDataset loads src through the pipeline so load hooks fire.
func (c *CLI) loadDataset(ctx context.Context, src string) (*matrix.Dataset, error) {
	prog := newProgress(c.Logger)
	d, err := pipeline.NewRunner(nil, nil, c.Logger).Load(ctx, pipeline.Options{Source: src})
	if err != nil {
		return nil, err
	}
	prog.done("Loaded " + src)
	return d, nil
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
