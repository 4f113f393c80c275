package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/softgrid/tabula/pkg/manage"
)

var reloadDiscard bool

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Re-read every type from disk",
	Long: `Re-read every registered type, picking up external edits.
Refused while unsaved modifications exist unless --discard is passed.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session := openSession()
		defer session.Close()

		err := session.Manager.ReloadAll(context.Background(), !reloadDiscard)
		if errors.Is(err, manage.ErrUnsavedChanges) {
			fmt.Fprintf(os.Stderr, "Unsaved modifications exist; save first or pass --discard.\n")
			os.Exit(1)
		}
		if err != nil {
			fatal("Failed to reload", err)
		}
		fmt.Println("Reloaded.")
	},
}

func init() {
	rootCmd.AddCommand(reloadCmd)
	reloadCmd.Flags().BoolVar(&reloadDiscard, "discard", false, "Discard unsaved modifications")
}
