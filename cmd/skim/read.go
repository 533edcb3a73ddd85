// ABOUTME: Read command for viewing article content
// ABOUTME: Displays full article details with markdown rendering and marks as read

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/skim/internal/content"
	"github.com/harper/skim/internal/models"
)

var readCmd = &cobra.Command{
	Use:   "read <item-id>",
	Short: "Read an article",
	Long:  "Display the full content of an article and mark it as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noMark, _ := cmd.Flags().GetBool("no-mark")

		feed, item, err := findItem(args[0])
		if err != nil {
			return err
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Println(strings.Repeat("─", 60))

		title := "Untitled"
		if item.Title != nil {
			title = *item.Title
		}
		fmt.Printf("%s\n\n", bold(title))

		fmt.Printf("%s %s\n", faint("Feed:"), feed.DisplayName())

		if item.Author != nil && *item.Author != "" {
			fmt.Printf("%s %s\n", faint("Author:"), *item.Author)
		}

		if item.PublishedAt != nil {
			fmt.Printf("%s %s\n", faint("Published:"), item.PublishedAt.Format("Mon, 02 Jan 2006 15:04 MST"))
		}

		if item.Link != nil {
			fmt.Printf("%s %s\n", faint("Link:"), cyan(*item.Link))
		}

		fmt.Println(strings.Repeat("─", 60))

		if item.Content != nil && *item.Content != "" {
			markdown := content.ToMarkdown(*item.Content)

			rendered, err := glamour.Render(markdown, "dark")
			if err != nil {
				// Fall back to plain markdown if rendering fails
				fmt.Printf("%s\n", faint("(markdown rendering unavailable, showing plain text)"))
				fmt.Printf("\n%s\n", markdown)
			} else {
				fmt.Print(rendered)
			}
		} else if item.ContentSnippet != nil && *item.ContentSnippet != "" {
			fmt.Printf("\n%s\n", *item.ContentSnippet)
		} else {
			fmt.Println("\n(No content available)")
		}

		fmt.Println()

		if !noMark && !item.Read {
			err := updateItem(feed.ID, item.ID, func(it *models.Item) {
				it.Read = true
			})
			if err != nil {
				return fmt.Errorf("failed to mark item as read: %w", err)
			}
			fmt.Printf("%s\n", faint("Marked as read"))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().Bool("no-mark", false, "don't mark the article as read")
}
