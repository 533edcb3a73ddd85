// ABOUTME: Shared helpers for locating and mutating stored items from the CLI
// ABOUTME: Item edits go through read-modify-write of the owning feed's collection

package main

import (
	"fmt"
	"strings"

	"github.com/harper/skim/internal/models"
)

// minPrefixLen guards against ambiguous short prefixes.
const minPrefixLen = 6

// findItem locates an item by exact ID or unique ID prefix across all feeds.
// It returns the owning feed alongside the item.
func findItem(ref string) (*models.Feed, *models.Item, error) {
	feeds, err := store.ListFeeds()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list feeds: %w", err)
	}

	// Exact match first.
	for _, feed := range feeds {
		items := store.ReadItems(feed.ID)
		for i := range items {
			if items[i].ID == ref {
				return feed, &items[i], nil
			}
		}
	}

	if len(ref) < minPrefixLen {
		return nil, nil, fmt.Errorf("item not found: %s (prefixes need at least %d characters)", ref, minPrefixLen)
	}

	var foundFeed *models.Feed
	var foundItem *models.Item
	matches := 0
	for _, feed := range feeds {
		items := store.ReadItems(feed.ID)
		for i := range items {
			if strings.HasPrefix(items[i].ID, ref) {
				foundFeed = feed
				foundItem = &items[i]
				matches++
			}
		}
	}

	switch matches {
	case 0:
		return nil, nil, fmt.Errorf("item not found: %s", ref)
	case 1:
		return foundFeed, foundItem, nil
	default:
		return nil, nil, fmt.Errorf("ambiguous item prefix %s (%d matches)", ref, matches)
	}
}

// updateItem applies mutate to the item with the given ID inside the feed's
// stored collection and writes the collection back.
func updateItem(feedID, itemID string, mutate func(*models.Item)) error {
	items := store.ReadItems(feedID)
	found := false
	for i := range items {
		if items[i].ID == itemID {
			mutate(&items[i])
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("item not found in feed: %s", itemID)
	}
	if err := store.WriteItems(feedID, items); err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	return nil
}
