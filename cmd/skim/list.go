// ABOUTME: List command for viewing stored feed items with filtering options
// ABOUTME: Displays items with read status, star, title, and published date

package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/skim/internal/models"
	"github.com/harper/skim/internal/timeutil"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List feed items",
	Long:    "List stored feed items with optional filtering by feed and read status",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		starredOnly, _ := cmd.Flags().GetBool("starred")
		feedFilter, _ := cmd.Flags().GetString("feed")
		limit, _ := cmd.Flags().GetInt("limit")
		today, _ := cmd.Flags().GetBool("today")
		yesterday, _ := cmd.Flags().GetBool("yesterday")
		week, _ := cmd.Flags().GetBool("week")

		// Date window from smart view flags.
		var since, until *time.Time
		if today {
			s := timeutil.StartOfToday()
			since = &s
		} else if yesterday {
			s := timeutil.StartOfYesterday()
			u := timeutil.EndOfYesterday()
			since = &s
			until = &u
		} else if week {
			s := timeutil.StartOfWeek()
			since = &s
		}

		feeds, err := store.ListFeeds()
		if err != nil {
			return fmt.Errorf("failed to list feeds: %w", err)
		}

		if feedFilter != "" {
			feed, err := store.GetFeedByURL(feedFilter)
			if err != nil {
				return fmt.Errorf("feed not found: %s", feedFilter)
			}
			feeds = []*models.Feed{feed}
		}

		feedNames := map[string]string{}
		var items []models.Item
		for _, feed := range feeds {
			feedNames[feed.ID] = feed.DisplayName()
			items = append(items, store.ReadItems(feed.ID)...)
		}

		filtered := items[:0]
		for _, item := range items {
			if !all && item.Read && !starredOnly {
				continue
			}
			if starredOnly && !item.IsStarred() {
				continue
			}
			if since != nil && (item.PublishedAt == nil || item.PublishedAt.Before(*since)) {
				continue
			}
			if until != nil && (item.PublishedAt == nil || !item.PublishedAt.Before(*until)) {
				continue
			}
			filtered = append(filtered, item)
		}
		items = filtered

		sortItemsByPublished(items)
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}

		if len(items) == 0 {
			fmt.Println("No items found")
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		for _, item := range items {
			idShort := item.ID
			if len(idShort) > 8 {
				idShort = idShort[:8]
			}
			fmt.Print(faint(idShort))
			fmt.Print(" ")

			if item.Read {
				fmt.Print("✓ ")
			} else {
				fmt.Print("  ")
			}

			if item.IsStarred() {
				fmt.Print(yellow("★ "))
			} else {
				fmt.Print("  ")
			}

			title := "Untitled"
			if item.Title != nil {
				title = *item.Title
			}
			fmt.Print(title)

			fmt.Printf(" %s", faint("["+feedNames[item.FeedID]+"]"))

			if item.PublishedAt != nil {
				fmt.Printf(" %s", faint(item.PublishedAt.Format("02 Jan 06 15:04")))
			}

			fmt.Println()
		}

		return nil
	},
}

// sortItemsByPublished orders items newest first, undated items last.
func sortItemsByPublished(items []models.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PublishedAt, items[j].PublishedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("all", "a", false, "show all items including read")
	listCmd.Flags().BoolP("starred", "s", false, "show only starred items")
	listCmd.Flags().StringP("feed", "f", "", "filter by feed URL")
	listCmd.Flags().IntP("limit", "n", 20, "max items to show")
	listCmd.Flags().Bool("today", false, "show only today's items")
	listCmd.Flags().Bool("yesterday", false, "show only yesterday's items")
	listCmd.Flags().Bool("week", false, "show only this week's items")

	listCmd.MarkFlagsMutuallyExclusive("today", "yesterday", "week")
}
