// ABOUTME: Serve command running the background refresh loop
// ABOUTME: One pass at startup, then one per configured interval until interrupted

package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scheduled refresh loop",
	Long: `Run skim as a long-lived process: refresh all feeds immediately, then
again every refresh interval (default 30 minutes) until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		interval := cfg.RefreshInterval()
		fmt.Printf("Refreshing every %s; press Ctrl-C to stop\n", interval)

		newScheduler().Loop(ctx, interval)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
