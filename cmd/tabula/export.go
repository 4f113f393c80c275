package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export loaded languages as go-i18n TOML message files",
	Long: `Write one messages.<code>.toml file per loaded language, in the
format consumed by nicksnyder/go-i18n. Keys with empty text are skipped.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session := openSession()
		defer session.Close()

		ctx := context.Background()
		loc := session.Localization
		if err := loc.LoadAllAvailable(ctx); err != nil {
			fatal("Failed to load languages", err)
		}

		if err := loc.ExportMessages(ctx, exportOut); err != nil {
			fatal("Failed to export", err)
		}
		for _, lang := range loc.LoadedLanguages() {
			fmt.Printf("exported %s/messages.%s.toml\n", exportOut, lang.Code())
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "i18n", "Output directory (relative to the workspace)")
}
