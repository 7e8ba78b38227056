// Package cli implements the abouttime command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tannerbroberts/abouttime/pkg/buildinfo"
	"github.com/tannerbroberts/abouttime/pkg/cache"
	"github.com/tannerbroberts/abouttime/pkg/errors"
	"github.com/tannerbroberts/abouttime/pkg/library"
	"github.com/tannerbroberts/abouttime/pkg/template"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "abouttime"
)

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
	Config Config

	// libraryOverride is set by the global --library flag.
	libraryOverride string
}

// New creates a new CLI instance with a default logger and loaded config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: LoadConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "abouttime",
		Short:        "Abouttime composes templates into proportional timelines",
		Long:         `Abouttime is a CLI for a template library: reusable activity templates composed into lanes of timed segments, with computed gaps, proportional layout, and nesting depth.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.libraryOverride, "library", "", "path to the library JSON file")

	// Attach the CLI logger to the command context so subcommands can pull
	// it back out with loggerFromContext, and reject malformed --library
	// values before any command runs.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if c.libraryOverride != "" {
			if err := errors.ValidateLibraryPath(c.libraryOverride); err != nil {
				return err
			}
		}
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.listCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.gapsCommand())
	root.AddCommand(c.depthCommand())
	root.AddCommand(c.suggestCommand())
	root.AddCommand(c.newCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Library Access
// =============================================================================

// libraryPath resolves the library path: --library flag, then config, then
// the default under the user config directory.
func (c *CLI) libraryPath() string {
	if c.libraryOverride != "" {
		return c.libraryOverride
	}
	if c.Config.Library != "" {
		return c.Config.Library
	}
	return defaultLibraryPath()
}

// fileStore opens the library file store at the resolved path.
func (c *CLI) fileStore() *library.FileStore {
	return library.NewFileStore(c.libraryPath(), c.Logger)
}

// useMongo reports whether the mongo library backend applies. The --library
// flag always forces the file backend, so ad-hoc library files win over a
// configured shared library.
func (c *CLI) useMongo() bool {
	return c.libraryOverride == "" && c.Config.Mongo.URI != ""
}

// mongoStore connects to the configured mongo library backend.
func (c *CLI) mongoStore(ctx context.Context) (*library.MongoStore, error) {
	return library.NewMongoStore(ctx, c.Config.Mongo.URI, c.Config.Mongo.Name, c.Logger)
}

// openStore loads the current library into an immutable store from the
// configured backend. A mongo connection failure falls back to the library
// file; a missing or corrupt library yields an empty store, never an error.
func (c *CLI) openStore(ctx context.Context) *template.Store {
	if c.useMongo() {
		ms, err := c.mongoStore(ctx)
		if err != nil {
			c.Logger.Warn("mongo unavailable, using the library file", "error", err)
		} else {
			defer func() { _ = ms.Close(ctx) }()
			return ms.LoadStore(ctx)
		}
	}
	return c.fileStore().LoadStore()
}

// editLibrary loads the library from the configured backend, applies fn,
// and saves the result through the same backend, so authoring commands
// never read from one backend and write to another.
func (c *CLI) editLibrary(ctx context.Context, fn func(template.Library) (template.Library, error)) error {
	if c.useMongo() {
		ms, err := c.mongoStore(ctx)
		if err != nil {
			c.Logger.Warn("mongo unavailable, using the library file", "error", err)
		} else {
			defer func() { _ = ms.Close(ctx) }()
			lib, err := fn(ms.Load(ctx))
			if err != nil {
				return err
			}
			return ms.Save(ctx, lib)
		}
	}
	fs := c.fileStore()
	lib, err := fn(fs.Load())
	if err != nil {
		return err
	}
	return fs.Save(lib)
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache builds the cache backend from config, honoring --no-cache.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if c.Config.Cache.Backend == "redis" && c.Config.Cache.RedisURL != "" {
		rc, err := cache.NewRedisCache(c.Config.Cache.RedisURL)
		if err != nil {
			c.Logger.Warn("redis unavailable, falling back to file cache", "error", err)
		} else {
			return rc
		}
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheKeyer picks the key strategy for a backend. A shared redis instance
// can hold entries for several applications, so redis keys are scoped under
// the application name; local backends use plain keys.
func (c *CLI) cacheKeyer(backend cache.Cache) cache.Keyer {
	keyer := cache.NewDefaultKeyer()
	if _, ok := backend.(*cache.RedisCache); ok {
		keyer = cache.NewScopedKeyer(keyer, appName+":")
	}
	return keyer
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/abouttime/).
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

// configDir returns the config directory (~/.config/abouttime/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// defaultLibraryPath is where the library lives when nothing else is set.
func defaultLibraryPath() string {
	dir, err := configDir()
	if err != nil {
		return "library.json"
	}
	return filepath.Join(dir, "library.json")
}
