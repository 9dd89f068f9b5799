// legacy is a terminal history puzzle: six stages, each solved by picking
// items in a hidden order.
//
// Usage:
//
//	legacy play              - Play the selected catalog
//	legacy list              - List available catalogs
//	legacy scores [catalog]  - Show the leaderboard
//	legacy serve             - Start SSH server for remote play
//	legacy validate <file>   - Check a catalog file
//
// Global flags:
//
//	--config <path>    - Settings file (default: ~/.legacy/settings.yaml)
//	--db <path>        - Scores database (default: from settings)
//	--catalog <id>     - Registered catalog id or catalog file path
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/delta-legacy/internal/catalog"
	"github.com/vovakirdan/delta-legacy/internal/catalog/builtin"
	"github.com/vovakirdan/delta-legacy/internal/config"
	"github.com/vovakirdan/delta-legacy/internal/registry"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagCatalog string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "legacy",
	Short: "Delta Legacy - uncover history one sequence at a time",
	Long: `Delta Legacy is a terminal puzzle journey through six historical stages.
Each stage hides a correct order; pick the items in that order to unlock
the stage's reward and move on.

Available commands:
  play      - Start a play-through
  list      - Show available catalogs
  scores    - View the leaderboard
  serve     - Start SSH server for remote play
  validate  - Check a catalog file

Examples:
  legacy play
  legacy play --name Ada --pace brisk
  legacy play --catalog ./my-stages.toml
  legacy serve --ssh :2222
  legacy scores delta`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides settings)")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Catalog id or YAML/TOML file (overrides settings)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
}

// loadSettings reads settings and applies the global flag overrides.
func loadSettings() (config.Settings, error) {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return config.Settings{}, err
	}
	if flagDBPath != "" {
		settings.Storage.DBPath = flagDBPath
	}
	if flagCatalog != "" {
		if isCatalogFile(flagCatalog) {
			settings.Catalog.Path = flagCatalog
		} else {
			settings.Catalog.ID = flagCatalog
			settings.Catalog.Path = ""
		}
	}
	return settings, nil
}

// isCatalogFile reports whether ref names a file rather than a registered id.
func isCatalogFile(ref string) bool {
	for _, ext := range catalog.FormatExtensions() {
		if strings.HasSuffix(strings.ToLower(ref), ext) {
			return true
		}
	}
	return false
}

// resolveCatalog loads the catalog the settings point at.
func resolveCatalog(settings config.Settings) (catalog.Catalog, error) {
	if settings.Catalog.Path != "" {
		path, err := config.ExpandHome(settings.Catalog.Path)
		if err != nil {
			return catalog.Catalog{}, err
		}
		return catalog.LoadFile(path)
	}

	id := settings.Catalog.ID
	if id == "" {
		id = builtin.DefaultID
	}
	if !registry.Exists(id) {
		return catalog.Catalog{}, fmt.Errorf("unknown catalog %q (run 'legacy list')", id)
	}
	return registry.Create(id)
}

// newLogger builds the logger for a command. Interactive commands pass
// io.Discard as fallback so log lines do not tear the TUI.
func newLogger(settings config.Settings, prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	w := fallback
	closer := func() {}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           settings.Log.ParseLevel(),
	})
	return logger, closer, nil
}

// fail prints err and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
