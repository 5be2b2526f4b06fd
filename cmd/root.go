package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/giasu/internal/advisor"
	"github.com/abhisek/giasu/internal/app"
	"github.com/abhisek/giasu/internal/logger"
	"github.com/abhisek/giasu/internal/store"
)

// cliLog is set by the root command before any subcommand runs.
var cliLog = logger.Nop()

var rootCmd = &cobra.Command{
	Use:   "giasu",
	Short: "Grade assessments and match students to universities",
	Long: "giasu grades multiple-choice test submissions and recommends universities\n" +
		"whose admission scores fit a student's expected score.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var (
			l   *logger.Logger
			err error
		)
		if mode, _ := cmd.Flags().GetString("log-mode"); mode != "" {
			l, err = logger.New(mode)
		} else {
			l, err = logger.FromEnv("quiet")
		}
		if err != nil {
			return err
		}
		cliLog = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		cliLog.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GIASU_DB env var)")
	rootCmd.PersistentFlags().String("log-mode", "", "Log mode: dev, prod or quiet (overrides GIASU_LOG_MODE, default quiet)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then GIASU_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func newService(s *store.Store, adv *advisor.Advisor) *app.Service {
	opts := app.StoreOptions(s)
	opts.Logger = cliLog
	opts.Advisor = adv
	return app.New(opts)
}

// openInput opens a document argument; "-" reads standard input.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}
