// Shoplist keeps a shopping list on the command line.
//
// Items are added and edited through a small form. Run interactively, the
// form is a terminal screen; with --name and --count it runs headless, which
// is what scripts use. Items live in a YAML file by default, or in SQLite or
// memory depending on the configured backend.
//
// Usage:
//
//	shoplist [command] [flags]
//
// See 'shoplist --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/shoplist/internal/config"
	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/version"
)

// Global flags
var (
	backendFlag  string
	dataFlag     string
	logLevelFlag string
)

// cfg is the effective configuration after flag overrides.
var cfg *config.Config

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shoplist",
	Short: "Shopping list manager",
	Long: `Add, edit, list and remove shopping-list items.

Without --name/--count on a terminal, 'add' and 'edit' open an interactive
form. Preferences are read from the config file (see 'shoplist config path').`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Item store backend (memory, yaml, sqlite)")
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", "Path of the item store file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Printing the version must work with a broken config file.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shoplist %s\n", version.Full())
	},
}

// setup loads the config file, applies flag overrides and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	c := *loaded
	applyOverrides(&c, backendFlag, dataFlag, logLevelFlag)
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = &c

	level := os.Getenv(logging.LogLevelEnvVar)
	if logLevelFlag != "" || level == "" {
		level = c.LogLevel
	}
	if err := logging.Initialize(level); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}

// applyOverrides copies non-empty flag values over the file values.
// Switching backends drops the configured path unless --data is given.
func applyOverrides(c *config.Config, backend, data, logLevel string) {
	if backend != "" && backend != c.Store.Backend {
		c.Store.Backend = backend
		c.Store.Path = ""
	}
	if data != "" {
		c.Store.Path = data
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}
