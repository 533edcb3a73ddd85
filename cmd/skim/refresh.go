// ABOUTME: Refresh command driving reconciliation of all feeds or a single feed
// ABOUTME: Prints per-pass counts with colored summary output

package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/skim/internal/fetch"
	"github.com/harper/skim/internal/reconcile"
	"github.com/harper/skim/internal/refresh"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh [url]",
	Short: "Refresh feeds",
	Long: `Fetch and reconcile all subscribed feeds, or a single feed by URL.

Uses HTTP caching headers (ETag, Last-Modified) to skip unchanged feeds.
Individual feed failures are counted and reported; they never abort the run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sched := newScheduler()

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		if len(args) == 1 {
			feed, err := store.GetFeedByURL(args[0])
			if err != nil {
				return fmt.Errorf("feed not found: %s", args[0])
			}

			switch sched.RefreshFeed(context.Background(), feed) {
			case refresh.OutcomeUpdated:
				fmt.Printf("%s refreshed %s\n", green("v"), feed.DisplayName())
			case refresh.OutcomeCached:
				fmt.Printf("%s %s not modified\n", faint("-"), feed.DisplayName())
			case refresh.OutcomeError:
				fmt.Printf("%s failed to refresh %s\n", red("x"), feed.DisplayName())
			}
			return nil
		}

		summary := sched.RefreshAll(context.Background())
		if summary.Skipped {
			fmt.Println("A refresh pass is already running; nothing to do")
			return nil
		}

		fmt.Printf("Refresh complete\n")
		fmt.Printf("  %s %d updated\n", green("v"), summary.UpdatedCount)
		if summary.CachedCount > 0 {
			fmt.Printf("  %s %d cached (not modified)\n", faint("-"), summary.CachedCount)
		}
		if summary.ErrorCount > 0 {
			fmt.Printf("  %s %d errors\n", red("x"), summary.ErrorCount)
		}
		return nil
	},
}

// newScheduler builds the refresh scheduler from the loaded config and store.
func newScheduler() *refresh.Scheduler {
	engine := reconcile.NewEngine(store)
	client := fetch.NewClient(cfg.FetchTimeout())
	return refresh.NewScheduler(store, engine, client)
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
