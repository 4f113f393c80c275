package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/softgrid/tabula/pkg/lingo"
)

var langsDropForce bool

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "List the languages available in the workspace",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session := openSession()
		defer session.Close()

		loc := session.Localization
		current := loc.CurrentLanguage()
		for _, lang := range loc.AvailableLanguages() {
			marker := " "
			if lang.Code() == current.Code() {
				marker = "*"
			}
			fmt.Printf("%s %s\t%s\n", marker, lang.Code(), lang.Name())
		}
	},
}

var langsDropCmd = &cobra.Command{
	Use:   "drop <code>",
	Short: "Remove a language and its translations from the workspace",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lang, ok := lingo.ParseLanguage(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown language %q.\n", args[0])
			os.Exit(1)
		}
		if !langsDropForce {
			fmt.Fprintf(os.Stderr, "Dropping %s deletes its translations; pass --force to confirm.\n", lang.Code())
			os.Exit(1)
		}

		session := openSession()
		defer session.Close()

		if err := session.Localization.DropLanguage(context.Background(), lang); err != nil {
			fatal("Failed to drop language", err)
		}
		fmt.Printf("Dropped %s.\n", lang.Code())
	},
}

func init() {
	rootCmd.AddCommand(langsCmd)
	langsCmd.AddCommand(langsDropCmd)

	langsDropCmd.Flags().BoolVar(&langsDropForce, "force", false, "Confirm deleting the language's translations")
}
