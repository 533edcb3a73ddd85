// ABOUTME: Folder management commands for organizing feeds into groups
// ABOUTME: Removing a folder detaches its feeds instead of deleting them

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/skim/internal/models"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage feed folders",
	Long:  "Create, list, rename, and remove folders that group feeds",
}

var folderAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := models.NewFolder(args[0])
		if err := store.AddFolder(folder); err != nil {
			return fmt.Errorf("failed to add folder: %w", err)
		}
		fmt.Printf("Created folder: %s\n", folder.Name)
		return nil
	},
}

var folderListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		folders, err := store.ListFolders()
		if err != nil {
			return fmt.Errorf("failed to list folders: %w", err)
		}
		if len(folders) == 0 {
			fmt.Println("No folders found. Create one with 'skim folder add <name>'")
			return nil
		}

		feeds, err := store.ListFeeds()
		if err != nil {
			return fmt.Errorf("failed to list feeds: %w", err)
		}
		counts := map[string]int{}
		for _, feed := range feeds {
			if feed.FolderID != nil {
				counts[*feed.FolderID]++
			}
		}

		for _, folder := range folders {
			fmt.Printf("%s (%d feeds)\n", folder.Name, counts[folder.ID])
		}
		return nil
	},
}

var folderRenameCmd = &cobra.Command{
	Use:   "rename <name> <new-name>",
	Short: "Rename a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, err := findFolderByName(args[0])
		if err != nil {
			return err
		}
		folder.Name = args[1]
		if err := store.UpdateFolder(folder); err != nil {
			return fmt.Errorf("failed to rename folder: %w", err)
		}
		fmt.Printf("Renamed folder to: %s\n", folder.Name)
		return nil
	},
}

var folderRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a folder",
	Long:    "Remove a folder. Feeds in the folder are kept and detached.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, err := findFolderByName(args[0])
		if err != nil {
			return err
		}
		if err := store.DeleteFolder(folder.ID); err != nil {
			return fmt.Errorf("failed to remove folder: %w", err)
		}
		fmt.Printf("Removed folder: %s\n", folder.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(folderCmd)
	folderCmd.AddCommand(folderAddCmd)
	folderCmd.AddCommand(folderListCmd)
	folderCmd.AddCommand(folderRenameCmd)
	folderCmd.AddCommand(folderRemoveCmd)
}
