package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizhive/quizgen/internal/config"
	"github.com/quizhive/quizgen/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizgen",
	Short: "Resilient quiz question generator",
	Long: "Quizgen generates quiz questions with an AI model when one can be reached\n" +
		"and falls back to a curated template bank when it cannot. Generation never\n" +
		"fails for a well-formed request.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to TOML config file")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite event database (overrides QUIZGEN_DB env var)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the --config file when given, else defaults plus
// environment overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then QUIZGEN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return store.DefaultDBPath()
}

// openStore opens the event database. Event logging is best-effort: a
// store that cannot be opened degrades to no logging, not to failure.
func openStore(cmd *cobra.Command) *store.Store {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: resolve database path: %v\n", err)
		return nil
	}
	s, err := store.Open(dbPath)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: open event database: %v\n", err)
		return nil
	}
	return s
}
