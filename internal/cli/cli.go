package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flowtext/mmdascii/pkg/rendercache"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mmdascii"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands: the logger attached to every
// command's context, plus version metadata for --version.
type CLI struct {
	Logger  *log.Logger
	Version string
	Commit  string
	Date    string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
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
		Short:        "mmdascii renders Mermaid flowchart diagrams as ASCII/Unicode art",
		Long:         `mmdascii compiles Mermaid flowchart/graph DSL source into a rendered 2D character grid, for embedding diagrams in terminals, READMEs, and plain-text documents.`,
		Version:      c.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(c.versionTemplate())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) versionTemplate() string {
	return appName + " " + c.Version + "\ncommit: " + c.Commit + "\nbuilt: " + c.Date + "\n"
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache builds the render cache backend requested by noCache/backend:
// "none" or noCache=true disables caching, "redis" connects to redisAddr,
// anything else (including the empty string) falls back to a file cache
// rooted at cacheDir, and to a null cache if even that can't be created.
func newCache(noCache bool, backend, redisAddr string) (rendercache.Cache, error) {
	if noCache || backend == "none" {
		return rendercache.NewNullCache(), nil
	}
	if backend == "redis" {
		return rendercache.NewRedisCache(context.Background(), redisAddr)
	}
	dir, err := cacheDir()
	if err != nil {
		return rendercache.NewNullCache(), nil
	}
	return rendercache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/mmdascii/).
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
