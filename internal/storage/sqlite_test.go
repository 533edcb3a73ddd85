// ABOUTME: Tests for the SQLite Store implementation
// ABOUTME: Same contract surface as the file store plus cascade behavior

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/skim/internal/models"
	"github.com/harper/skim/internal/retention"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), retention.Policy{})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewSQLiteStoreCreatesFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := NewSQLiteStore(dbPath, retention.Policy{})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestSQLiteFeedCRUD(t *testing.T) {
	store := newTestSQLiteStore(t)

	feed := models.NewFeed("https://example.com/feed.xml")
	feed.Title = strptr("Example Feed")
	feed.ViewType = models.ViewPhoto
	feed.LoadFullContent = true

	if err := store.AddFeed(feed); err != nil {
		t.Fatalf("AddFeed failed: %v", err)
	}

	got, err := store.GetFeed(feed.ID)
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}
	if got.URL != feed.URL {
		t.Errorf("URL = %q, want %q", got.URL, feed.URL)
	}
	if got.ViewType != models.ViewPhoto {
		t.Errorf("ViewType = %q, want photo", got.ViewType)
	}
	if !got.LoadFullContent {
		t.Error("LoadFullContent not persisted")
	}

	if err := store.AddFeed(models.NewFeed(feed.URL)); !errors.Is(err, ErrDuplicateURL) {
		t.Errorf("duplicate AddFeed = %v, want ErrDuplicateURL", err)
	}

	got.Title = strptr("Renamed")
	got.LastError = strptr("fetch failed")
	got.ErrorCount = 3
	if err := store.UpdateFeed(got); err != nil {
		t.Fatalf("UpdateFeed failed: %v", err)
	}
	updated, err := store.GetFeedByURL(feed.URL)
	if err != nil {
		t.Fatalf("GetFeedByURL failed: %v", err)
	}
	if updated.Title == nil || *updated.Title != "Renamed" {
		t.Errorf("Title = %v", updated.Title)
	}
	if updated.LastError == nil || *updated.LastError != "fetch failed" || updated.ErrorCount != 3 {
		t.Errorf("error bookkeeping not persisted: %v / %d", updated.LastError, updated.ErrorCount)
	}

	if err := store.DeleteFeed(feed.ID); err != nil {
		t.Fatalf("DeleteFeed failed: %v", err)
	}
	if _, err := store.GetFeed(feed.ID); !errors.Is(err, ErrFeedNotFound) {
		t.Errorf("GetFeed after delete = %v, want ErrFeedNotFound", err)
	}
	if err := store.DeleteFeed(feed.ID); !errors.Is(err, ErrFeedNotFound) {
		t.Errorf("second DeleteFeed = %v, want ErrFeedNotFound", err)
	}
}

func TestSQLiteFolders(t *testing.T) {
	store := newTestSQLiteStore(t)

	folder := models.NewFolder("News")
	vt := models.ViewArticle
	folder.ViewType = &vt
	if err := store.AddFolder(folder); err != nil {
		t.Fatalf("AddFolder failed: %v", err)
	}

	feed := models.NewFeed("https://example.com/feed.xml")
	feed.FolderID = &folder.ID
	if err := store.AddFeed(feed); err != nil {
		t.Fatalf("AddFeed failed: %v", err)
	}

	folders, err := store.ListFolders()
	if err != nil {
		t.Fatalf("ListFolders failed: %v", err)
	}
	if len(folders) != 1 || folders[0].Name != "News" {
		t.Fatalf("folders = %v", folders)
	}
	if folders[0].ViewType == nil || *folders[0].ViewType != models.ViewArticle {
		t.Errorf("folder ViewType = %v", folders[0].ViewType)
	}

	if err := store.DeleteFolder(folder.ID); err != nil {
		t.Fatalf("DeleteFolder failed: %v", err)
	}
	got, err := store.GetFeed(feed.ID)
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}
	if got.FolderID != nil {
		t.Errorf("FolderID = %v, want nil after folder delete", got.FolderID)
	}
}

func TestSQLiteItemsRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	feed := models.NewFeed("https://example.com/feed.xml")
	if err := store.AddFeed(feed); err != nil {
		t.Fatalf("AddFeed failed: %v", err)
	}

	older := time.Now().Add(-2 * time.Hour).UTC()
	newer := time.Now().Add(-time.Hour).UTC()
	starred := true
	items := []models.Item{
		{ID: "old", FeedID: feed.ID, Title: strptr("Old"), PublishedAt: &older, Read: true},
		{ID: "new", FeedID: feed.ID, Title: strptr("New"), PublishedAt: &newer, Starred: &starred},
		{ID: "undated", FeedID: feed.ID, Title: strptr("Undated")},
	}
	if err := store.WriteItems(feed.ID, items); err != nil {
		t.Fatalf("WriteItems failed: %v", err)
	}

	got := store.ReadItems(feed.ID)
	if len(got) != 3 {
		t.Fatalf("got %d items, want 3", len(got))
	}
	// Newest first, undated last.
	if got[0].ID != "new" || got[1].ID != "old" || got[2].ID != "undated" {
		t.Errorf("order = [%s %s %s], want [new old undated]", got[0].ID, got[1].ID, got[2].ID)
	}
	if !got[1].Read {
		t.Error("read flag not persisted")
	}
	if !got[0].IsStarred() {
		t.Error("starred flag not persisted")
	}
	if got[2].Starred != nil {
		t.Errorf("absent starred flag should stay nil, got %v", got[2].Starred)
	}

	// A second write replaces, never appends.
	if err := store.WriteItems(feed.ID, items[:1]); err != nil {
		t.Fatalf("second WriteItems failed: %v", err)
	}
	if got := store.ReadItems(feed.ID); len(got) != 1 {
		t.Errorf("after replace got %d items, want 1", len(got))
	}
}

func TestSQLiteWriteItemsRetentionFilter(t *testing.T) {
	store := newTestSQLiteStore(t)
	store.now = func() time.Time { return time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC) }

	feed := models.NewFeed("https://example.com/feed.xml")
	if err := store.AddFeed(feed); err != nil {
		t.Fatalf("AddFeed failed: %v", err)
	}

	items := []models.Item{
		{ID: "fresh", FeedID: feed.ID, PublishedAt: timeptr(time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC))},
		{ID: "stale", FeedID: feed.ID, PublishedAt: timeptr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))},
		{ID: "undated", FeedID: feed.ID},
	}
	if err := store.WriteItems(feed.ID, items); err != nil {
		t.Fatalf("WriteItems failed: %v", err)
	}

	got := store.ReadItems(feed.ID)
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2 (stale dropped)", len(got))
	}
}

func TestSQLiteDeleteFeedCascades(t *testing.T) {
	store := newTestSQLiteStore(t)

	feed := models.NewFeed("https://example.com/feed.xml")
	if err := store.AddFeed(feed); err != nil {
		t.Fatalf("AddFeed failed: %v", err)
	}
	if err := store.WriteItems(feed.ID, []models.Item{{ID: "a", FeedID: feed.ID}}); err != nil {
		t.Fatalf("WriteItems failed: %v", err)
	}

	if err := store.DeleteFeed(feed.ID); err != nil {
		t.Fatalf("DeleteFeed failed: %v", err)
	}
	if got := store.ReadItems(feed.ID); len(got) != 0 {
		t.Errorf("items survived feed delete: %v", got)
	}
}

func TestSQLiteCleanupExpired(t *testing.T) {
	store := newTestSQLiteStore(t)
	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	feed := models.NewFeed("https://example.com/feed.xml")
	if err := store.AddFeed(feed); err != nil {
		t.Fatalf("AddFeed failed: %v", err)
	}

	// A wide policy at write time lets the old item land; cleanup with the
	// standard window must still remove it.
	store.policy = retention.Policy{Days: 365}
	items := []models.Item{
		{ID: "day29", FeedID: feed.ID, PublishedAt: timeptr(now.AddDate(0, 0, -29))},
		{ID: "day31", FeedID: feed.ID, PublishedAt: timeptr(now.AddDate(0, 0, -31))},
		{ID: "undated", FeedID: feed.ID},
	}
	if err := store.WriteItems(feed.ID, items); err != nil {
		t.Fatalf("WriteItems failed: %v", err)
	}

	removed, err := store.CleanupExpired(30)
	if err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2 (31-day and undated)", removed)
	}
	got := store.ReadItems(feed.ID)
	if len(got) != 1 || got[0].ID != "day29" {
		t.Errorf("surviving items = %v, want day29 only", got)
	}
}

func TestSQLiteLastUpdated(t *testing.T) {
	store := newTestSQLiteStore(t)

	got, err := store.LastUpdated()
	if err != nil {
		t.Fatalf("LastUpdated failed: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("LastUpdated before any pass = %v, want zero", got)
	}

	stamp := time.Date(2024, 6, 1, 12, 0, 0, 123456789, time.UTC)
	if err := store.SetLastUpdated(stamp); err != nil {
		t.Fatalf("SetLastUpdated failed: %v", err)
	}
	if err := store.SetLastUpdated(stamp.Add(time.Hour)); err != nil {
		t.Fatalf("second SetLastUpdated failed: %v", err)
	}
	got, err = store.LastUpdated()
	if err != nil {
		t.Fatalf("LastUpdated failed: %v", err)
	}
	if !got.Equal(stamp.Add(time.Hour)) {
		t.Errorf("LastUpdated = %v, want %v", got, stamp.Add(time.Hour))
	}
}
