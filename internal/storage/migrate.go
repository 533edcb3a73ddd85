// ABOUTME: Data migration between skim storage backends
// ABOUTME: Copies folders, feeds, and item collections from source to destination

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Folders int
	Feeds   int
	Items   int
}

// MigrateData copies all data from src to dst storage. Folders go first so
// feed folder references resolve, then each feed with its item collection.
// The destination should be empty before calling this function. Items
// outside the destination's retention window are dropped on write, like any
// other write.
func MigrateData(src, dst Store) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	folders, err := src.ListFolders()
	if err != nil {
		return nil, fmt.Errorf("list source folders: %w", err)
	}
	for _, folder := range folders {
		if err := dst.AddFolder(folder); err != nil {
			return nil, fmt.Errorf("create folder %q: %w", folder.Name, err)
		}
		summary.Folders++
	}

	feeds, err := src.ListFeeds()
	if err != nil {
		return nil, fmt.Errorf("list source feeds: %w", err)
	}
	for _, feed := range feeds {
		if err := dst.AddFeed(feed); err != nil {
			return nil, fmt.Errorf("create feed %q: %w", feed.URL, err)
		}
		summary.Feeds++

		items := src.ReadItems(feed.ID)
		if len(items) == 0 {
			continue
		}
		if err := dst.WriteItems(feed.ID, items); err != nil {
			return nil, fmt.Errorf("write items for feed %q: %w", feed.URL, err)
		}
		summary.Items += len(items)
	}

	lastUpdated, err := src.LastUpdated()
	if err != nil {
		return nil, fmt.Errorf("read source last updated: %w", err)
	}
	if !lastUpdated.IsZero() {
		if err := dst.SetLastUpdated(lastUpdated); err != nil {
			return nil, fmt.Errorf("set destination last updated: %w", err)
		}
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any entries.
// Returns false if the directory does not exist.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
