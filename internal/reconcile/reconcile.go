// ABOUTME: Reconciliation engine merging freshly fetched items with stored state
// ABOUTME: The fetch is the authority for content and membership, the store for user state

package reconcile

import (
	"fmt"
	"sort"

	"github.com/harper/skim/internal/content"
	"github.com/harper/skim/internal/feedparse"
	"github.com/harper/skim/internal/identity"
	"github.com/harper/skim/internal/models"
	"github.com/harper/skim/internal/storage"
)

// Engine produces a feed's new authoritative item collection from a fetch
// and persists it.
type Engine struct {
	items storage.ItemStore
}

// NewEngine creates an Engine over the given item store.
func NewEngine(items storage.ItemStore) *Engine {
	return &Engine{items: items}
}

// Reconcile merges fetched raw items with the stored collection for one feed
// and persists the result.
//
// Membership of the result is exactly the fetched set: items present in
// storage but absent from the fetch are dropped, since the feed itself is
// the source of truth for existence. For items whose resolved id matches a
// stored item, the stored read flag and (when present) starred flag carry
// forward; every display field comes from the fetch. Two fetched items
// resolving to the same id keep the first occurrence, so the persisted
// collection never holds duplicate ids.
//
// The result is sorted by publish date descending with undated items last,
// then written through the store, which applies the lenient retention
// filter at the write boundary.
func (e *Engine) Reconcile(feedID, feedURL string, fetched []feedparse.RawItem) error {
	existing := e.items.ReadItems(feedID)

	byID := make(map[string]models.Item, len(existing))
	for _, item := range existing {
		byID[item.ID] = item
	}

	merged := make([]models.Item, 0, len(fetched))
	seen := make(map[string]struct{}, len(fetched))
	for _, raw := range fetched {
		id := identity.Resolve(raw, feedURL)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		item := toItem(raw, feedID, id)
		if prev, ok := byID[id]; ok {
			item.Read = prev.Read
			if prev.Starred != nil {
				item.Starred = prev.Starred
			}
		}
		merged = append(merged, item)
	}

	sortByPublished(merged)

	if err := e.items.WriteItems(feedID, merged); err != nil {
		return fmt.Errorf("reconcile feed %s: %w", feedID, err)
	}
	return nil
}

// toItem maps a raw fetched item onto the stored shape. First-seen defaults:
// unread, no starred flag.
func toItem(raw feedparse.RawItem, feedID, id string) models.Item {
	item := models.Item{
		ID:     id,
		FeedID: feedID,
		Read:   false,
	}

	if raw.Link != "" {
		link := raw.Link
		item.Link = &link
	}
	if raw.Title != "" {
		title := raw.Title
		item.Title = &title
	}
	if raw.Author != "" {
		author := raw.Author
		item.Author = &author
	}
	if raw.PublishedAt != nil {
		t := *raw.PublishedAt
		item.PublishedAt = &t
	}
	if raw.Content != "" {
		c := raw.Content
		item.Content = &c
	}

	snippet := raw.ContentSnippet
	if snippet == "" && raw.Content != "" {
		snippet = content.Snippet(raw.Content)
	}
	if snippet != "" {
		item.ContentSnippet = &snippet
	}

	return item
}

// sortByPublished orders items newest first; items with no parseable date
// sort last, keeping their fetch order.
func sortByPublished(items []models.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PublishedAt, items[j].PublishedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
