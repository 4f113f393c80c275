package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var getShowContext bool

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the localized text for a key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		session := openSession()
		defer session.Close()

		loc := session.Localization
		lang := targetLanguage(session)
		if err := loc.LoadLanguage(context.Background(), lang); err != nil {
			fatal("Failed to load language", err)
		}

		key := args[0]
		if getShowContext {
			entry, ok := loc.GetEntry(key, lang)
			if !ok {
				fmt.Printf("[%s]\n", key)
				return
			}
			fmt.Printf("%s\n", entry.Text)
			if entry.Context != "" {
				fmt.Printf("context: %s\n", entry.Context)
			}
			return
		}

		fmt.Println(loc.GetText(key, lang))
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().BoolVar(&getShowContext, "context", false, "Also print the translator context note")
}
