// ABOUTME: Cleanup command for the standalone retention maintenance pass
// ABOUTME: Removes items past the cutoff, including items with no parseable date

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/skim/internal/retention"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove expired items from storage",
	Long: `Scan every feed's stored items and remove those older than the retention
window. Unlike the filtering applied during refresh, this pass also removes
items whose publish date is missing or unparsable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		removed, err := store.CleanupExpired(days)
		if err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}

		if removed == 0 {
			fmt.Println("No expired items found")
		} else {
			fmt.Printf("Removed %d expired item(s)\n", removed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.Flags().IntP("days", "d", retention.DefaultDays, "retention window in days")
}
