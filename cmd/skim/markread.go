// ABOUTME: Mark-read and mark-unread commands for toggling item read state
// ABOUTME: Supports single items by ID and bulk marking by date cutoff

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/skim/internal/models"
	"github.com/harper/skim/internal/timeutil"
)

var markReadCmd = &cobra.Command{
	Use:   "mark-read [item-id]",
	Short: "Mark items as read",
	Long:  "Mark a single item as read by ID, or use --before to mark all items older than a date",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		before, _ := cmd.Flags().GetString("before")

		if len(args) == 1 {
			if before != "" {
				return fmt.Errorf("cannot use --before with an item ID")
			}
			return setReadState(args[0], true)
		}

		if before == "" {
			return fmt.Errorf("provide an item ID or use --before for bulk marking")
		}

		cutoff, ok := timeutil.ParsePeriod(before)
		if !ok {
			parsed, err := time.Parse("2006-01-02", before)
			if err != nil {
				return fmt.Errorf("invalid period %q: use yesterday, week, month, or YYYY-MM-DD", before)
			}
			cutoff = parsed
		}

		count, err := markReadBefore(cutoff)
		if err != nil {
			return err
		}
		if count == 0 {
			fmt.Println("No items to mark as read")
		} else {
			fmt.Printf("Marked %d items as read\n", count)
		}
		return nil
	},
}

var markUnreadCmd = &cobra.Command{
	Use:   "mark-unread <item-id>",
	Short: "Mark an item as unread",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setReadState(args[0], false)
	},
}

func setReadState(ref string, read bool) error {
	feed, item, err := findItem(ref)
	if err != nil {
		return err
	}

	if item.Read == read {
		if read {
			fmt.Println("Item is already marked as read")
		} else {
			fmt.Println("Item is already marked as unread")
		}
		return nil
	}

	err = updateItem(feed.ID, item.ID, func(it *models.Item) {
		it.Read = read
	})
	if err != nil {
		return err
	}

	title := "Untitled"
	if item.Title != nil {
		title = *item.Title
	}
	if read {
		fmt.Printf("Marked as read: %s\n", title)
	} else {
		fmt.Printf("Marked as unread: %s\n", title)
	}
	return nil
}

// markReadBefore marks every unread item published before cutoff as read,
// one collection rewrite per affected feed.
func markReadBefore(cutoff time.Time) (int, error) {
	feeds, err := store.ListFeeds()
	if err != nil {
		return 0, fmt.Errorf("failed to list feeds: %w", err)
	}

	total := 0
	for _, feed := range feeds {
		items := store.ReadItems(feed.ID)
		changed := 0
		for i := range items {
			if items[i].Read || items[i].PublishedAt == nil {
				continue
			}
			if items[i].PublishedAt.Before(cutoff) {
				items[i].Read = true
				changed++
			}
		}
		if changed == 0 {
			continue
		}
		if err := store.WriteItems(feed.ID, items); err != nil {
			return total, fmt.Errorf("failed to save items for %s: %w", feed.DisplayName(), err)
		}
		total += changed
	}
	return total, nil
}

func init() {
	rootCmd.AddCommand(markReadCmd)
	rootCmd.AddCommand(markUnreadCmd)

	markReadCmd.Flags().StringP("before", "b", "", "mark items older than: yesterday, week, month, or YYYY-MM-DD")
}
