// Package cli provides the cobra command tree for recetasu.
// Services are injected by main through SetServices before Execute.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recetasu/internal/core/ports/driving"
	"github.com/custodia-labs/recetasu/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var verbose bool

// Services injected by main.
var (
	catalogService  driving.CatalogService
	commentService  driving.CommentService
	settingsService driving.SettingsService
	configWatcher   ConfigWatcher
)

// Services groups the driving ports the commands use.
type Services struct {
	Catalog  driving.CatalogService
	Comments driving.CommentService
	Settings driving.SettingsService
}

// ConfigWatcher notifies about configuration file changes.
// Long-running commands use it to tell the user a restart is needed.
type ConfigWatcher interface {
	Watch(ctx context.Context, onChange func()) error
}

var rootCmd = &cobra.Command{
	Use:   "recetasu",
	Short: "Browse, search and manage recipes from your terminal",
	Long: `RecetasU is a recipe catalog for the terminal.

It talks to a remote recipe service over HTTP and lets you browse,
search, filter, create, edit, delete and review recipes from the
command line, an interactive terminal UI, or an MCP server.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
		logger.Section(cmd.CommandPath())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging to stderr")
}

// SetServices injects the core services.
func SetServices(s Services) {
	catalogService = s.Catalog
	commentService = s.Comments
	settingsService = s.Settings
}

// SetConfigWatcher injects the configuration watcher. It may be nil.
func SetConfigWatcher(w ConfigWatcher) {
	configWatcher = w
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Command output goes to stdout so
// listings and --json can be piped.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

// watchConfig logs when the configuration file changes. Settings such
// as the API base URL are only read at startup.
func watchConfig(ctx context.Context) {
	if configWatcher == nil {
		return
	}
	go func() {
		err := configWatcher.Watch(ctx, func() {
			logger.Info("configuration changed; restart recetasu to apply it")
		})
		if err != nil {
			logger.Warn("config watch stopped: %v", err)
		}
	}()
}
