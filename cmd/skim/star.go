// ABOUTME: Star and unstar commands for flagging items to keep
// ABOUTME: Star state changes survive subsequent refreshes of the feed

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/skim/internal/models"
)

var starCmd = &cobra.Command{
	Use:   "star <item-id>",
	Short: "Star an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStarState(args[0], true)
	},
}

var unstarCmd = &cobra.Command{
	Use:   "unstar <item-id>",
	Short: "Remove the star from an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStarState(args[0], false)
	},
}

func setStarState(ref string, starred bool) error {
	feed, item, err := findItem(ref)
	if err != nil {
		return err
	}

	if item.IsStarred() == starred {
		if starred {
			fmt.Println("Item is already starred")
		} else {
			fmt.Println("Item is not starred")
		}
		return nil
	}

	err = updateItem(feed.ID, item.ID, func(it *models.Item) {
		it.Starred = &starred
	})
	if err != nil {
		return err
	}

	title := "Untitled"
	if item.Title != nil {
		title = *item.Title
	}
	if starred {
		fmt.Printf("Starred: %s\n", title)
	} else {
		fmt.Printf("Unstarred: %s\n", title)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(starCmd)
	rootCmd.AddCommand(unstarCmd)
}
