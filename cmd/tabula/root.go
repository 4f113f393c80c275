package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	tabula "github.com/softgrid/tabula"
)

var (
	verbose   bool
	workspace string
	sheetMode bool
	language  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tabula",
	Short: "An editing toolkit for game-config tables and localization files",
	Long: `Tabula edits directories of config tables and localized text.
Edits accumulate in memory against a baseline; nothing touches disk until
an explicit save, and a batch save writes each dirty table exactly once.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "dir", "d", "", "Workspace directory (default: discovered from CWD)")
	rootCmd.PersistentFlags().BoolVar(&sheetMode, "sheet", false, "Use single-sheet localization layout")
	rootCmd.PersistentFlags().StringVarP(&language, "lang", "l", "", "Language code to operate on (default: current)")
}

// openSession wires a session over the configured (or discovered)
// workspace directory.
func openSession() *tabula.Session {
	dir := workspace
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}
		if root, err := tabula.FindWorkspaceRoot(cwd); err == nil {
			dir = root
		} else {
			dir = cwd
		}
	}

	opts := []tabula.Option{
		tabula.WithLogger(slog.Default()),
		tabula.WithMustExist(true),
	}
	if sheetMode {
		opts = append(opts, tabula.WithSheetMode())
	}

	session, err := tabula.Open(dir, opts...)
	if err != nil {
		fatal("Failed to open workspace", err)
	}
	return session
}

// targetLanguage resolves the --lang flag, falling back to the session's
// current language.
func targetLanguage(session *tabula.Session) tabula.Language {
	if language == "" {
		return session.Localization.CurrentLanguage()
	}
	lang, ok := tabula.ParseLanguage(language)
	if !ok {
		fatal("Unknown language", fmt.Errorf("%q", language))
	}
	return lang
}
