package main

import (
	"fmt"

	"github.com/spf13/cobra"

	tabula "github.com/softgrid/tabula"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tabula",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tabula version %s\n", tabula.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
