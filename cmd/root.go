package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/catalog"
	"github.com/abhisek/quizbox/internal/config"
	"github.com/abhisek/quizbox/internal/logging"
	"github.com/abhisek/quizbox/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizbox",
	Short: "Terminal quiz games with coins, XP and badges",
	Long:  "Quizbox plays short multiple-choice quiz games in the terminal and keeps a wallet of the coins, XP and badges you earn.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides QUIZBOX_DB env var)")
	flags.String("config", "", "Path to a YAML config file")
	flags.String("content", "", "Directory of extra question series layered over the built-in ones")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, then applies the
// global flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DB = v
	}
	if v, _ := cmd.Flags().GetString("content"); v != "" {
		cfg.ContentDir = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		if _, err := log.ParseLevel(v); err != nil {
			return cfg, fmt.Errorf("--log-level: %w", err)
		}
		cfg.LogLevel = v
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path (flag, then env, then
// config file), falling back to the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func openStore(cfg config.Config) (*store.Store, string, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, "", fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("open store: %w", err)
	}
	return st, dbPath, nil
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.ContentDir != "" {
		return catalog.LoadDir(cfg.ContentDir)
	}
	return catalog.Default()
}

// cliLogger logs to stderr for the non-interactive commands.
func cliLogger(cfg config.Config) *log.Logger {
	return logging.New(os.Stderr, cfg.Level())
}
