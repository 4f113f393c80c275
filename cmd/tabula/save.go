package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var saveForce bool

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save every type with unsaved modifications",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session := openSession()
		defer session.Close()

		report := session.Manager.SaveAll(context.Background(), saveForce)
		for _, saved := range report.Saved() {
			fmt.Printf("saved %s\n", saved)
		}
		if !report.OK() {
			fmt.Fprintf(os.Stderr, "save failed: %v\n", report.Err())
			os.Exit(1)
		}
		if len(report.Saved()) == 0 {
			fmt.Println("Nothing to save.")
		}
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().BoolVar(&saveForce, "force", false, "Write every type even when clean")
}
