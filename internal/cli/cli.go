// Package cli implements the bannersmith command-line interface.
//
// # Commands
//
//   - render: Export a banner from flags or a style file
//   - edit: Interactive terminal editor with live preview details
//   - templates, patterns, fonts: List the built-in tables
//   - config: Show the resolved configuration
//   - cache: Manage the export artifact cache
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context and also receives export, font and cache
// events through observability hooks.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bannersmith/pkg/buildinfo"
	"github.com/matzehuels/bannersmith/pkg/cache"
	"github.com/matzehuels/bannersmith/pkg/fonts"
	"github.com/matzehuels/bannersmith/pkg/observability"
	"github.com/matzehuels/bannersmith/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "bannersmith"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// Out receives command output (default os.Stdout).
	Out io.Writer

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Bannersmith composes styled text banners and exports them as images",
		Long:         `Bannersmith is a banner editor for the terminal: pick a font, colors, alignment, spacing and a gradient, pattern or image background, then export the result as PNG, JPEG or SVG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.installHooks()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/bannersmith/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.templatesCommand())
	root.AddCommand(c.patternsCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// installHooks routes library events to the CLI logger.
func (c *CLI) installHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetExportHooks(h)
	observability.SetFontHooks(h)
	observability.SetCacheHooks(h)
}

// config loads the configuration for the current invocation.
func (c *CLI) config() (Config, error) {
	return loadConfig(c.configPath)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cfg Config, reg *fonts.Registry) (*pipeline.Runner, error) {
	cc, err := newCache(cfg)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, nil, c.Logger)
	r.Fonts = reg
	return r, nil
}

func newCache(cfg Config) (cache.Cache, error) {
	if cfg.NoCache {
		return cache.NewNullCache(), nil
	}
	dir := cfg.CacheDir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the artifact cache directory using the XDG standard
// (~/.cache/bannersmith/artifacts).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName, "artifacts"), nil
	}
	return cache.DefaultDir()
}
