// ABOUTME: Feed management commands for subscribing, listing, and updating feeds
// ABOUTME: Metadata edits go through the config store and never touch item units

package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/skim/internal/models"
	"github.com/harper/skim/internal/storage"
)

var feedCmd = &cobra.Command{
	Use:     "feed",
	Aliases: []string{"f"},
	Short:   "Manage feed subscriptions",
	Long:    "Subscribe, list, update, and remove RSS/Atom feeds",
}

var feedAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Subscribe to a feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		title, _ := cmd.Flags().GetString("title")
		folderName, _ := cmd.Flags().GetString("folder")
		viewType, _ := cmd.Flags().GetString("view-type")
		fullContent, _ := cmd.Flags().GetBool("full-content")

		feed := models.NewFeed(url)
		if title != "" {
			feed.Title = &title
		}
		if viewType != "" {
			vt, err := parseViewType(viewType)
			if err != nil {
				return err
			}
			feed.ViewType = vt
		}
		feed.LoadFullContent = fullContent

		if folderName != "" {
			folder, err := findFolderByName(folderName)
			if err != nil {
				return err
			}
			feed.FolderID = &folder.ID
		}

		if err := store.AddFeed(feed); err != nil {
			if errors.Is(err, storage.ErrDuplicateURL) {
				return fmt.Errorf("already subscribed: %s", url)
			}
			return fmt.Errorf("failed to add feed: %w", err)
		}

		fmt.Printf("Subscribed: %s\n", url)
		fmt.Printf("Feed ID: %s\n", feed.ID)
		return nil
	},
}

var feedListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List subscribed feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		feeds, err := store.ListFeeds()
		if err != nil {
			return fmt.Errorf("failed to list feeds: %w", err)
		}
		if len(feeds) == 0 {
			fmt.Println("No feeds found. Subscribe with 'skim feed add <url>'")
			return nil
		}

		folderNames := map[string]string{}
		folders, err := store.ListFolders()
		if err != nil {
			return fmt.Errorf("failed to list folders: %w", err)
		}
		for _, folder := range folders {
			folderNames[folder.ID] = folder.Name
		}

		faint := color.New(color.Faint).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		fmt.Printf("Found %d feed(s):\n\n", len(feeds))
		for _, feed := range feeds {
			if feed.FolderID != nil {
				fmt.Printf("[%s] %s\n", folderNames[*feed.FolderID], feed.DisplayName())
			} else {
				fmt.Printf("%s\n", feed.DisplayName())
			}
			fmt.Printf("  URL: %s\n", feed.URL)
			if feed.LastUpdated != nil {
				fmt.Printf("  %s\n", faint("Updated: "+feed.LastUpdated.Format("02 Jan 06 15:04")))
			}
			if feed.LastError != nil {
				fmt.Printf("  %s\n", red("Error: "+*feed.LastError))
			}
			fmt.Println()
		}
		return nil
	},
}

var feedRemoveCmd = &cobra.Command{
	Use:     "remove <url>",
	Aliases: []string{"rm"},
	Short:   "Unsubscribe from a feed",
	Long:    "Remove a feed and delete its stored items",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feed, err := store.GetFeedByURL(args[0])
		if err != nil {
			return fmt.Errorf("feed not found: %s", args[0])
		}

		if err := store.DeleteFeed(feed.ID); err != nil {
			return fmt.Errorf("failed to remove feed: %w", err)
		}

		fmt.Printf("Unsubscribed: %s\n", feed.URL)
		return nil
	},
}

var feedUpdateCmd = &cobra.Command{
	Use:   "update <url>",
	Short: "Update feed metadata",
	Long:  "Change a feed's title, folder, view type, or full-content flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feed, err := store.GetFeedByURL(args[0])
		if err != nil {
			return fmt.Errorf("feed not found: %s", args[0])
		}

		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			feed.Title = &title
		}
		if cmd.Flags().Changed("view-type") {
			viewType, _ := cmd.Flags().GetString("view-type")
			vt, err := parseViewType(viewType)
			if err != nil {
				return err
			}
			feed.ViewType = vt
		}
		if cmd.Flags().Changed("full-content") {
			fullContent, _ := cmd.Flags().GetBool("full-content")
			feed.LoadFullContent = fullContent
		}
		if cmd.Flags().Changed("folder") {
			folderName, _ := cmd.Flags().GetString("folder")
			if folderName == "" {
				feed.FolderID = nil
			} else {
				folder, err := findFolderByName(folderName)
				if err != nil {
					return err
				}
				feed.FolderID = &folder.ID
			}
		}

		if err := store.UpdateFeed(feed); err != nil {
			return fmt.Errorf("failed to update feed: %w", err)
		}

		fmt.Printf("Updated: %s\n", feed.DisplayName())
		return nil
	},
}

// parseViewType validates a view-type flag value.
func parseViewType(s string) (models.ViewType, error) {
	switch vt := models.ViewType(s); vt {
	case models.ViewArticle, models.ViewPhoto, models.ViewVideo:
		return vt, nil
	default:
		return "", fmt.Errorf("invalid view type %q: use article, photo, or video", s)
	}
}

// findFolderByName resolves a folder by its display name.
func findFolderByName(name string) (*models.Folder, error) {
	folders, err := store.ListFolders()
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	for _, folder := range folders {
		if folder.Name == name {
			return folder, nil
		}
	}
	return nil, fmt.Errorf("folder not found: %s", name)
}

func init() {
	rootCmd.AddCommand(feedCmd)
	feedCmd.AddCommand(feedAddCmd)
	feedCmd.AddCommand(feedListCmd)
	feedCmd.AddCommand(feedRemoveCmd)
	feedCmd.AddCommand(feedUpdateCmd)

	feedAddCmd.Flags().StringP("title", "t", "", "feed title (filled from the feed on first refresh if empty)")
	feedAddCmd.Flags().StringP("folder", "f", "", "folder to organize feed in")
	feedAddCmd.Flags().String("view-type", "", "display hint: article, photo, or video")
	feedAddCmd.Flags().Bool("full-content", false, "fetch full article content for items")

	feedUpdateCmd.Flags().StringP("title", "t", "", "new feed title")
	feedUpdateCmd.Flags().StringP("folder", "f", "", "new folder (empty detaches)")
	feedUpdateCmd.Flags().String("view-type", "", "display hint: article, photo, or video")
	feedUpdateCmd.Flags().Bool("full-content", false, "fetch full article content for items")
}
