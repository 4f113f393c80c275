package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the persistence state of every registered type",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session := openSession()
		defer session.Close()

		m := session.Manager
		for _, id := range m.Types() {
			line := fmt.Sprintf("%-16s %s", id, m.Status(id))
			if err := m.LastError(id); err != nil {
				line += fmt.Sprintf(" (last error: %v)", err)
			}
			fmt.Println(line)
		}
		if dirty := m.DirtyTypes(); len(dirty) > 0 {
			fmt.Printf("unsaved: %v\n", dirty)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
