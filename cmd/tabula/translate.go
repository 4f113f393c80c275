package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	tabula "github.com/softgrid/tabula"
	"github.com/softgrid/tabula/pkg/lingo"
)

var translateFrom string

var translateCmd = &cobra.Command{
	Use:   "translate <key>",
	Short: "Machine-translate a key into the target language",
	Long: `Translate the text of a key from the source language (--from)
into the target language (--lang) using the configured translation
backend, then stage the result.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		session := openSession()
		defer session.Close()

		ctx := context.Background()
		loc := session.Localization

		src, ok := tabula.ParseLanguage(translateFrom)
		if !ok {
			fatal("Unknown source language", fmt.Errorf("%q", translateFrom))
		}
		dst := targetLanguage(session)
		if err := loc.LoadLanguage(ctx, src); err != nil {
			fatal("Failed to load source language", err)
		}
		_ = loc.LoadLanguage(ctx, dst)
		loc.SelectLanguage(dst)

		key := args[0]
		applied, err := loc.AutoTranslateKey(ctx, key, src)
		if errors.Is(err, lingo.ErrNoTranslator) {
			fmt.Fprintln(os.Stderr, "No translation backend configured.")
			os.Exit(1)
		}
		if err != nil {
			fatal("Translation failed", err)
		}
		if !applied {
			fmt.Printf("Nothing to translate for %s.\n", key)
			return
		}

		if err := loc.SaveLanguage(ctx, dst); err != nil {
			fatal("Failed to save", err)
		}
		fmt.Printf("Translated %s: %s\n", key, loc.GetText(key, dst))
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)
	translateCmd.Flags().StringVar(&translateFrom, "from", "en", "Source language code")
}
