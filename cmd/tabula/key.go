package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/softgrid/tabula/pkg/lingo"
)

var (
	keyDesc     string
	keyCategory string
	keyFixed    bool
	keyForce    bool
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage localization keys",
}

var keyAddCmd = &cobra.Command{
	Use:   "add <key>",
	Short: "Add a localization key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		session := openSession()
		defer session.Close()

		key := args[0]
		err := session.Localization.AddKey(context.Background(), key, keyDesc, keyCategory, keyFixed)
		if errors.Is(err, lingo.ErrKeyExists) {
			fmt.Fprintf(os.Stderr, "Key %q already exists.\n", key)
			os.Exit(1)
		}
		if err != nil {
			fatal("Failed to add key", err)
		}
		fmt.Printf("Added %s.\n", key)
	},
}

var keyDelCmd = &cobra.Command{
	Use:   "del <key>",
	Short: "Delete a localization key",
	Long: `Delete a key and its text in every loaded language.
Fixed keys are protected; pass --force to delete them anyway.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		session := openSession()
		defer session.Close()

		ctx := context.Background()
		loc := session.Localization
		if err := loc.LoadAllAvailable(ctx); err != nil {
			fatal("Failed to load languages", err)
		}

		key := args[0]
		var err error
		if keyForce {
			err = loc.ForceDeleteKey(ctx, key)
		} else {
			err = loc.DeleteKey(ctx, key)
		}
		if errors.Is(err, lingo.ErrKeyFixed) {
			fmt.Fprintf(os.Stderr, "Key %q is fixed; use --force to delete it.\n", key)
			os.Exit(1)
		}
		if err != nil {
			fatal("Failed to delete key", err)
		}
		fmt.Printf("Deleted %s.\n", key)
	},
}

var keyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session := openSession()
		defer session.Close()

		for _, meta := range session.Localization.Keys() {
			marker := " "
			if meta.Fixed {
				marker = "!"
			}
			line := fmt.Sprintf("%s %s", marker, meta.ID)
			if meta.Category != "" {
				line += fmt.Sprintf(" [%s]", meta.Category)
			}
			if meta.Description != "" {
				line += " - " + meta.Description
			}
			fmt.Println(line)
		}
	},
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyAddCmd)
	keyCmd.AddCommand(keyDelCmd)
	keyCmd.AddCommand(keyListCmd)

	keyAddCmd.Flags().StringVar(&keyDesc, "desc", "", "Description of what the key labels")
	keyAddCmd.Flags().StringVar(&keyCategory, "category", "", "Category grouping for the key")
	keyAddCmd.Flags().BoolVar(&keyFixed, "fixed", false, "Mark the key as fixed (code references it; cannot be deleted)")
	keyDelCmd.Flags().BoolVar(&keyForce, "force", false, "Delete even if the key is fixed")
}
