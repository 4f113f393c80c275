package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	setContext string
	setNoSave  bool
)

var setCmd = &cobra.Command{
	Use:   "set <key> <text>",
	Short: "Set the localized text for a key",
	Long: `Set the text for a key in the target language and save it.
Pass --no-save to only stage the edit (useful when scripting several
edits followed by one 'tabula save').`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		session := openSession()
		defer session.Close()

		ctx := context.Background()
		loc := session.Localization
		lang := targetLanguage(session)
		// Load when the file exists; a brand-new language starts empty.
		_ = loc.LoadLanguage(ctx, lang)

		key, text := args[0], args[1]
		loc.SetText(key, text, lang)
		if setContext != "" {
			loc.SetContext(key, setContext, lang)
		}

		if setNoSave {
			fmt.Printf("Staged %s (%s), not saved.\n", key, lang.Code())
			return
		}

		if err := loc.SaveLanguage(ctx, lang); err != nil {
			fatal("Failed to save", err)
		}
		fmt.Printf("Saved %s (%s).\n", key, lang.Code())
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().StringVar(&setContext, "context", "", "Translator context note for the key")
	setCmd.Flags().BoolVar(&setNoSave, "no-save", false, "Stage the edit without writing the file")
}
