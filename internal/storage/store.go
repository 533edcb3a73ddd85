// ABOUTME: Storage interfaces and shared types for skim data persistence
// ABOUTME: Metadata and item bodies live in separate storage units by design

package storage

import (
	"errors"
	"time"

	"github.com/harper/skim/internal/models"
)

// Sentinel errors shared by all backends.
var (
	ErrFeedNotFound   = errors.New("feed not found")
	ErrFolderNotFound = errors.New("folder not found")
	ErrDuplicateURL   = errors.New("feed URL already subscribed")
)

// ConfigStore persists feed and folder metadata plus the global last-updated
// timestamp. Metadata never embeds item bodies: metadata is small and
// rewritten often, item collections are large and rewritten per refresh, so
// they live in separate storage units and never race on the same write.
type ConfigStore interface {
	// ListFeeds returns all subscribed feeds without items.
	ListFeeds() ([]*models.Feed, error)

	// GetFeed retrieves a feed by ID.
	GetFeed(id string) (*models.Feed, error)

	// GetFeedByURL finds a feed by its URL.
	GetFeedByURL(url string) (*models.Feed, error)

	// AddFeed stores a new feed. Subscribing the same URL twice returns
	// ErrDuplicateURL.
	AddFeed(feed *models.Feed) error

	// UpdateFeed rewrites a feed's metadata record.
	UpdateFeed(feed *models.Feed) error

	// DeleteFeed removes a feed and its item collection (cascade).
	DeleteFeed(id string) error

	// ListFolders returns all folders.
	ListFolders() ([]*models.Folder, error)

	// AddFolder stores a new folder.
	AddFolder(folder *models.Folder) error

	// UpdateFolder rewrites a folder record.
	UpdateFolder(folder *models.Folder) error

	// DeleteFolder removes a folder and detaches (does not delete) its feeds.
	DeleteFolder(id string) error

	// LastUpdated returns the timestamp of the last completed refresh pass,
	// zero if none has run yet.
	LastUpdated() (time.Time, error)

	// SetLastUpdated records the completion time of a refresh pass.
	SetLastUpdated(t time.Time) error
}

// ItemStore persists per-feed item collections.
type ItemStore interface {
	// ReadItems returns the stored items for a feed. It never fails: a
	// missing unit yields an empty slice, and a corrupt unit is logged and
	// likewise yields an empty slice.
	ReadItems(feedID string) []models.Item

	// WriteItems atomically replaces the stored collection for a feed.
	// Items outside the merge-time retention window are dropped at this
	// boundary, so no caller can persist items that should be evicted;
	// undated items are kept.
	WriteItems(feedID string, items []models.Item) error

	// DeleteItems removes a feed's stored collection. Deleting a collection
	// that does not exist is not an error.
	DeleteItems(feedID string) error

	// CleanupExpired removes items older than maxAgeDays across all stored
	// collections and returns the total removed. Unlike WriteItems
	// filtering, this pass also removes items with no parseable date.
	CleanupExpired(maxAgeDays int) (int, error)
}

// Store is the full storage contract a backend implements.
type Store interface {
	ConfigStore
	ItemStore

	// Close releases backend resources.
	Close() error
}

// HydrateFeeds returns all feeds with their item collections loaded. This is
// the read-aggregation point external surfaces use.
func HydrateFeeds(s Store) ([]*models.Feed, error) {
	feeds, err := s.ListFeeds()
	if err != nil {
		return nil, err
	}
	for _, feed := range feeds {
		feed.Items = s.ReadItems(feed.ID)
	}
	return feeds, nil
}
