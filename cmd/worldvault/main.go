// Package main provides the worldvault CLI entry point.
// Running without arguments starts the interactive TUI; subcommands run
// headless for scripting.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"worldvault/internal/config"
	"worldvault/internal/logging"
)

// Version is the release version, overridden at build time with
// -ldflags "-X main.Version=...".
var Version = "1.3.0"

var (
	// Global flags
	cfgPath string
	verbose bool

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "worldvault",
	Short: "worldvault - back up your Minecraft worlds",
	Long: `worldvault finds Minecraft save-game folders across platforms
(Java and Bedrock editions, plus MultiMC/PrismLauncher/ATLauncher
instances) and copies the selected worlds into a single timestamped
ZIP archive with per-world restore metadata.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgPath
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				return err
			}
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		cfgPath = path

		// The TUI owns the terminal; its logs go to the file only.
		if cmd.CalledAs() == cmd.Root().Use && len(args) == 0 {
			logger, err = logging.NewQuiet(cfg.Logging, filepath.Dir(path), verbose)
		} else {
			logger, err = logging.New(cfg.Logging, filepath.Dir(path), verbose)
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// versionCmd prints the version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the worldvault version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("worldvault %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(worldsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// historyDBPath returns the backup history database location, next to the
// config file.
func historyDBPath() string {
	return filepath.Join(filepath.Dir(cfgPath), "history.db")
}

// resolveDestination picks the archive destination: explicit flag, then
// config default, then the user's home directory.
func resolveDestination(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if cfg.Backups.DefaultDestination != "" {
		return cfg.Backups.DefaultDestination, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("no destination configured and no home directory: %w", err)
	}
	return home, nil
}
