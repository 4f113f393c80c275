package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/softgrid/tabula/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and report external changes",
	Long: `Watch the workspace directory and print a line for every file
another program modifies. Runs until interrupted.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session := openSession()
		defer session.Close()

		events, cancel := session.Notifier.Subscribe()
		defer cancel()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := session.Watch(ctx); err != nil {
			fatal("Failed to start watcher", err)
		}
		fmt.Println("Watching for external changes. Ctrl-C to stop.")

		for {
			select {
			case <-ctx.Done():
				fmt.Println("\nStopped.")
				return
			case e, ok := <-events:
				if !ok {
					return
				}
				if e.Type == core.EventExternalChange {
					fmt.Printf("changed: %s\n", e.Resource)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
