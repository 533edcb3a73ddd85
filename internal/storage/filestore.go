// ABOUTME: File-backed Store implementation mirroring the split-storage layout
// ABOUTME: feeds.json holds metadata, storage/<feedID>.json holds each feed's items

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harper/skim/internal/models"
	"github.com/harper/skim/internal/retention"
)

const (
	configFileName = "feeds.json"
	itemsDirName   = "storage"
)

// FileStore persists skim data as JSON files: one metadata document plus one
// item file per feed. Item writes and metadata writes touch disjoint files,
// which is the primary concurrency-safety mechanism between a scheduled
// refresh and metadata edits.
type FileStore struct {
	dataDir string
	policy  retention.Policy

	// mu serializes document read-modify-write cycles within this process.
	mu sync.Mutex

	now func() time.Time
}

// Compile-time check that FileStore implements Store.
var _ Store = (*FileStore)(nil)

// configDocument is the on-disk shape of the metadata file.
type configDocument struct {
	Feeds       []models.Feed   `json:"feeds"`
	Folders     []models.Folder `json:"folders"`
	LastUpdated *time.Time      `json:"lastUpdated,omitempty"`
}

// NewFileStore creates a file-backed store rooted at dataDir, creating the
// directory layout and migrating any legacy inline-item metadata on first
// read.
func NewFileStore(dataDir string, policy retention.Policy) (*FileStore, error) {
	s := &FileStore{
		dataDir: dataDir,
		policy:  policy,
		now:     time.Now,
	}

	if err := os.MkdirAll(s.itemsDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	if err := s.migrateLegacyInline(); err != nil {
		return nil, err
	}

	return s, nil
}

// Close releases resources. For FileStore this is a no-op.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) configPath() string {
	return filepath.Join(s.dataDir, configFileName)
}

func (s *FileStore) itemsDir() string {
	return filepath.Join(s.dataDir, itemsDirName)
}

func (s *FileStore) itemsPath(feedID string) string {
	return filepath.Join(s.itemsDir(), feedID+".json")
}

// readDocument loads the metadata document, returning an empty document if
// the file does not exist yet.
func (s *FileStore) readDocument() (*configDocument, error) {
	data, err := os.ReadFile(s.configPath())
	if errors.Is(err, fs.ErrNotExist) {
		return &configDocument{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var doc configDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &doc, nil
}

// writeDocument persists the metadata document atomically, stripping any
// inline items so the config file never carries item bodies.
func (s *FileStore) writeDocument(doc *configDocument) error {
	for i := range doc.Feeds {
		doc.Feeds[i].Items = nil
	}
	if doc.Feeds == nil {
		doc.Feeds = []models.Feed{}
	}
	if doc.Folders == nil {
		doc.Folders = []models.Folder{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := writeFileAtomic(s.configPath(), data); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// migrateLegacyInline splits metadata records that still carry embedded item
// bodies (the legacy single-file format) into the two-collection layout.
// Runs once: after the split the rewritten config no longer has inline items.
func (s *FileStore) migrateLegacyInline() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		// A corrupt config file is surfaced here rather than silently
		// replaced; item files are untouched either way.
		return err
	}

	needsMigration := false
	for _, feed := range doc.Feeds {
		if len(feed.Items) > 0 {
			needsMigration = true
			break
		}
	}
	if !needsMigration {
		return nil
	}

	log.Printf("storage: migrating legacy inline items to split layout")
	for _, feed := range doc.Feeds {
		if len(feed.Items) == 0 {
			continue
		}
		if err := s.WriteItems(feed.ID, feed.Items); err != nil {
			return fmt.Errorf("migrate items for feed %s: %w", feed.ID, err)
		}
	}

	if err := s.writeDocument(doc); err != nil {
		return fmt.Errorf("rewrite config after migration: %w", err)
	}
	log.Printf("storage: migration complete")
	return nil
}

// ListFeeds returns all subscribed feeds without items.
func (s *FileStore) ListFeeds() ([]*models.Feed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return nil, err
	}

	feeds := make([]*models.Feed, len(doc.Feeds))
	for i := range doc.Feeds {
		feed := doc.Feeds[i]
		feed.Items = nil
		feeds[i] = &feed
	}
	return feeds, nil
}

// GetFeed retrieves a feed by ID.
func (s *FileStore) GetFeed(id string) (*models.Feed, error) {
	feeds, err := s.ListFeeds()
	if err != nil {
		return nil, err
	}
	for _, feed := range feeds {
		if feed.ID == id {
			return feed, nil
		}
	}
	return nil, ErrFeedNotFound
}

// GetFeedByURL finds a feed by its URL.
func (s *FileStore) GetFeedByURL(url string) (*models.Feed, error) {
	feeds, err := s.ListFeeds()
	if err != nil {
		return nil, err
	}
	for _, feed := range feeds {
		if feed.URL == url {
			return feed, nil
		}
	}
	return nil, ErrFeedNotFound
}

// AddFeed stores a new feed, rejecting duplicate URLs.
func (s *FileStore) AddFeed(feed *models.Feed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	for _, existing := range doc.Feeds {
		if existing.URL == feed.URL {
			return ErrDuplicateURL
		}
	}

	doc.Feeds = append(doc.Feeds, *feed)
	return s.writeDocument(doc)
}

// UpdateFeed rewrites a feed's metadata record.
func (s *FileStore) UpdateFeed(feed *models.Feed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	for i := range doc.Feeds {
		if doc.Feeds[i].ID == feed.ID {
			doc.Feeds[i] = *feed
			return s.writeDocument(doc)
		}
	}
	return ErrFeedNotFound
}

// DeleteFeed removes a feed and its item collection.
func (s *FileStore) DeleteFeed(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}

	idx := -1
	for i := range doc.Feeds {
		if doc.Feeds[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrFeedNotFound
	}

	doc.Feeds = append(doc.Feeds[:idx], doc.Feeds[idx+1:]...)
	if err := s.writeDocument(doc); err != nil {
		return err
	}
	return s.DeleteItems(id)
}

// ListFolders returns all folders.
func (s *FileStore) ListFolders() ([]*models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return nil, err
	}

	folders := make([]*models.Folder, len(doc.Folders))
	for i := range doc.Folders {
		folder := doc.Folders[i]
		folders[i] = &folder
	}
	return folders, nil
}

// AddFolder stores a new folder.
func (s *FileStore) AddFolder(folder *models.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	doc.Folders = append(doc.Folders, *folder)
	return s.writeDocument(doc)
}

// UpdateFolder rewrites a folder record.
func (s *FileStore) UpdateFolder(folder *models.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	for i := range doc.Folders {
		if doc.Folders[i].ID == folder.ID {
			doc.Folders[i] = *folder
			return s.writeDocument(doc)
		}
	}
	return ErrFolderNotFound
}

// DeleteFolder removes a folder and detaches its member feeds.
func (s *FileStore) DeleteFolder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}

	idx := -1
	for i := range doc.Folders {
		if doc.Folders[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrFolderNotFound
	}

	doc.Folders = append(doc.Folders[:idx], doc.Folders[idx+1:]...)
	for i := range doc.Feeds {
		if doc.Feeds[i].FolderID != nil && *doc.Feeds[i].FolderID == id {
			doc.Feeds[i].FolderID = nil
		}
	}
	return s.writeDocument(doc)
}

// LastUpdated returns the timestamp of the last completed refresh pass.
func (s *FileStore) LastUpdated() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return time.Time{}, err
	}
	if doc.LastUpdated == nil {
		return time.Time{}, nil
	}
	return *doc.LastUpdated, nil
}

// SetLastUpdated records the completion time of a refresh pass.
func (s *FileStore) SetLastUpdated(t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	doc.LastUpdated = &t
	return s.writeDocument(doc)
}
