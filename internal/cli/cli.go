// Package cli implements the shelfplan command-line interface.
//
// Commands operate on planograms kept in the configured store (a directory of
// JSON entries by default, or Redis or MongoDB). Every edit goes through an
// [editor.Runner], the same path the HTTP API uses.
//
// # Commands
//
//   - init, list, show, rm, import, export: planogram documents
//   - place, item add|move|rm: previewing and committing placements
//   - unit add|rm|width, surface add|rm|move: structural edits
//   - catalog list|search: the product catalog
//   - graph: DOT or SVG of what rests on what
//   - edit: interactive keyboard editor
//   - serve: HTTP API
//   - store path|info|clear: the planogram store
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfplan/pkg/buildinfo"
	"github.com/matzehuels/shelfplan/pkg/catalog"
	"github.com/matzehuels/shelfplan/pkg/editor"
	"github.com/matzehuels/shelfplan/pkg/storage"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "shelfplan"

	// configFile is the config file name inside the config directory.
	configFile = "config.toml"
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

	configPath string // --config
	storeKind  string // --store, overrides the config file

	cfg *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Shelfplan lays out products on shelving units",
		Long:         `Shelfplan edits planograms: shelving units with solid shelves and hanging rails, and the products placed on them. Dropped items fall onto the nearest shelf or item below and are pushed aside instead of overlapping.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+filepath.Join("$XDG_CONFIG_HOME", appName, configFile)+")")
	root.PersistentFlags().StringVar(&c.storeKind, "store", "", "storage backend: file, memory, redis or mongo")

	root.AddCommand(c.initCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.itemCommand())
	root.AddCommand(c.unitCommand())
	root.AddCommand(c.surfaceCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// withRunner opens the configured store, runs fn and closes the store.
func (c *CLI) withRunner(ctx context.Context, fn func(r *editor.Runner) error) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	cat, err := cfg.loadCatalog()
	if err != nil {
		return err
	}

	c.Logger.Debug("opening store", "backend", cfg.Storage.Backend, "location", cfg.Storage.Describe())
	repo, err := storage.OpenRepository(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Backend().Close(); err != nil {
			c.Logger.Warn("close store", "err", err)
		}
	}()

	return fn(editor.NewRunner(repo, cat, cfg.Placement, c.Logger))
}

// catalog returns the configured product catalog.
func (c *CLI) catalog() (*catalog.Catalog, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	return cfg.loadCatalog()
}

// config loads the config file once and applies flag overrides.
func (c *CLI) config() (*Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, configFile)
	}
	cfg, err := LoadConfig(path, explicit)
	if err != nil {
		return nil, err
	}
	if c.storeKind != "" {
		cfg.Storage.Backend = c.storeKind
	}
	c.Logger.Debug("config", "path", path, "store", cfg.Storage.Backend)
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/shelfplan/).
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

// dataDir returns the data directory using XDG standard (~/.local/share/shelfplan/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
