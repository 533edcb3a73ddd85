// ABOUTME: Per-feed item collection persistence for FileStore
// ABOUTME: One JSON file per feed, replaced atomically, retention-filtered on write

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/skim/internal/models"
	"github.com/harper/skim/internal/retention"
)

// Item files are not guarded by the document mutex: reconciliation is the
// sole writer of a feed's item unit, and the atomic replace keeps concurrent
// readers consistent.

// ReadItems returns the stored items for a feed. Missing and corrupt units
// both yield an empty slice; corruption is logged, never escalated.
func (s *FileStore) ReadItems(feedID string) []models.Item {
	data, err := os.ReadFile(s.itemsPath(feedID))
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Item{}
	}
	if err != nil {
		log.Printf("storage: read items for feed %s: %v", feedID, err)
		return []models.Item{}
	}

	var items []models.Item
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("storage: parse items for feed %s: %v", feedID, err)
		return []models.Item{}
	}
	return items
}

// WriteItems atomically replaces the stored collection for a feed, dropping
// items outside the merge-time retention window (undated items are kept).
func (s *FileStore) WriteItems(feedID string, items []models.Item) error {
	cutoff := s.policy.Cutoff(s.now())

	kept := make([]models.Item, 0, len(items))
	for _, item := range items {
		if retention.Keep(item, cutoff) {
			kept = append(kept, item)
		}
	}

	data, err := json.MarshalIndent(kept, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal items for feed %s: %w", feedID, err)
	}
	if err := writeFileAtomic(s.itemsPath(feedID), data); err != nil {
		return fmt.Errorf("write items for feed %s: %w", feedID, err)
	}
	return nil
}

// DeleteItems removes a feed's stored collection, tolerating absence.
func (s *FileStore) DeleteItems(feedID string) error {
	err := os.Remove(s.itemsPath(feedID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete items for feed %s: %w", feedID, err)
	}
	return nil
}

// CleanupExpired removes items older than maxAgeDays across every stored
// collection, rewrites only the units that changed, and returns the total
// removed. Items with no parseable date are removed by this pass. Per-unit
// failures are logged and skipped so one corrupt file cannot abort the sweep.
func (s *FileStore) CleanupExpired(maxAgeDays int) (int, error) {
	policy := retention.Policy{Days: maxAgeDays}
	cutoff := policy.Cutoff(s.now())

	entries, err := os.ReadDir(s.itemsDir())
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("scan items directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		feedID := strings.TrimSuffix(entry.Name(), ".json")

		path := filepath.Join(s.itemsDir(), entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("storage: cleanup read %s: %v", entry.Name(), err)
			continue
		}

		var items []models.Item
		if err := json.Unmarshal(data, &items); err != nil {
			log.Printf("storage: cleanup parse %s: %v", entry.Name(), err)
			continue
		}

		kept := make([]models.Item, 0, len(items))
		for _, item := range items {
			if retention.KeepStrict(item, cutoff) {
				kept = append(kept, item)
			}
		}
		if len(kept) == len(items) {
			continue
		}

		out, err := json.MarshalIndent(kept, "", "  ")
		if err != nil {
			log.Printf("storage: cleanup marshal %s: %v", entry.Name(), err)
			continue
		}
		if err := writeFileAtomic(path, out); err != nil {
			log.Printf("storage: cleanup write items for feed %s: %v", feedID, err)
			continue
		}
		removed += len(items) - len(kept)
	}

	return removed, nil
}
