// ABOUTME: SQLite storage implementation using modernc.org/sqlite (pure Go)
// ABOUTME: Same Store contract as FileStore; per-feed item replacement is transactional

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/harper/skim/internal/models"
	"github.com/harper/skim/internal/retention"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	policy retention.Policy
	now    func() time.Time
}

// Compile-time check that SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a SQLite-backed store at dbPath.
func NewSQLiteStore(dbPath string, policy retention.Policy) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	// WAL mode so a concurrent reader never blocks on a refresh write.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db, policy: policy, now: time.Now}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

// initSchema creates the database tables if they don't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS feeds (
			id TEXT PRIMARY KEY,
			url TEXT UNIQUE NOT NULL,
			title TEXT,
			description TEXT,
			view_type TEXT DEFAULT 'article',
			folder_id TEXT,
			load_full_content INTEGER DEFAULT 0,
			etag TEXT,
			last_modified TEXT,
			last_updated TIMESTAMP,
			last_error TEXT,
			error_count INTEGER DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		);

		CREATE TABLE IF NOT EXISTS folders (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			view_type TEXT
		);

		CREATE TABLE IF NOT EXISTS items (
			feed_id TEXT NOT NULL REFERENCES feeds(id) ON DELETE CASCADE,
			id TEXT NOT NULL,
			link TEXT,
			title TEXT,
			author TEXT,
			published_at TIMESTAMP,
			content TEXT,
			content_snippet TEXT,
			read INTEGER NOT NULL DEFAULT 0,
			starred INTEGER,
			PRIMARY KEY (feed_id, id)
		);

		CREATE INDEX IF NOT EXISTS idx_items_published ON items(feed_id, published_at DESC);

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const feedColumns = `id, url, title, description, view_type, folder_id,
	load_full_content, etag, last_modified, last_updated, last_error,
	error_count, created_at`

// scanFeed reads one feed row.
func scanFeed(row interface{ Scan(...any) error }) (*models.Feed, error) {
	var feed models.Feed
	var title, description, viewType, folderID, etag, lastModified, lastError sql.NullString
	var lastUpdated sql.NullTime
	var loadFullContent int

	err := row.Scan(&feed.ID, &feed.URL, &title, &description, &viewType,
		&folderID, &loadFullContent, &etag, &lastModified, &lastUpdated,
		&lastError, &feed.ErrorCount, &feed.CreatedAt)
	if err != nil {
		return nil, err
	}

	if title.Valid {
		feed.Title = &title.String
	}
	if description.Valid {
		feed.Description = &description.String
	}
	if viewType.Valid && viewType.String != "" {
		feed.ViewType = models.ViewType(viewType.String)
	}
	if folderID.Valid {
		feed.FolderID = &folderID.String
	}
	feed.LoadFullContent = loadFullContent != 0
	if etag.Valid {
		feed.ETag = &etag.String
	}
	if lastModified.Valid {
		feed.LastModified = &lastModified.String
	}
	if lastUpdated.Valid {
		feed.LastUpdated = &lastUpdated.Time
	}
	if lastError.Valid {
		feed.LastError = &lastError.String
	}
	return &feed, nil
}

// ListFeeds returns all feeds sorted by creation date.
func (s *SQLiteStore) ListFeeds() ([]*models.Feed, error) {
	rows, err := s.db.Query(`SELECT ` + feedColumns + ` FROM feeds ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	defer rows.Close()

	var feeds []*models.Feed
	for rows.Next() {
		feed, err := scanFeed(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feed: %w", err)
		}
		feeds = append(feeds, feed)
	}
	return feeds, rows.Err()
}

// GetFeed retrieves a feed by ID.
func (s *SQLiteStore) GetFeed(id string) (*models.Feed, error) {
	feed, err := scanFeed(s.db.QueryRow(`SELECT `+feedColumns+` FROM feeds WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFeedNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return feed, nil
}

// GetFeedByURL finds a feed by its URL.
func (s *SQLiteStore) GetFeedByURL(url string) (*models.Feed, error) {
	feed, err := scanFeed(s.db.QueryRow(`SELECT `+feedColumns+` FROM feeds WHERE url = ?`, url))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFeedNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get feed by url: %w", err)
	}
	return feed, nil
}

// AddFeed stores a new feed, rejecting duplicate URLs.
func (s *SQLiteStore) AddFeed(feed *models.Feed) error {
	var exists int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM feeds WHERE url = ?`, feed.URL).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check duplicate url: %w", err)
	}
	if exists > 0 {
		return ErrDuplicateURL
	}

	_, err = s.db.Exec(`
		INSERT INTO feeds (`+feedColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		feed.ID, feed.URL, feed.Title, feed.Description, string(feed.ViewType),
		feed.FolderID, boolToInt(feed.LoadFullContent), feed.ETag,
		feed.LastModified, feed.LastUpdated, feed.LastError, feed.ErrorCount,
		feed.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert feed: %w", err)
	}
	return nil
}

// UpdateFeed rewrites a feed's metadata record.
func (s *SQLiteStore) UpdateFeed(feed *models.Feed) error {
	res, err := s.db.Exec(`
		UPDATE feeds SET url = ?, title = ?, description = ?, view_type = ?,
			folder_id = ?, load_full_content = ?, etag = ?, last_modified = ?,
			last_updated = ?, last_error = ?, error_count = ?
		WHERE id = ?`,
		feed.URL, feed.Title, feed.Description, string(feed.ViewType),
		feed.FolderID, boolToInt(feed.LoadFullContent), feed.ETag,
		feed.LastModified, feed.LastUpdated, feed.LastError, feed.ErrorCount,
		feed.ID)
	if err != nil {
		return fmt.Errorf("update feed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update feed: %w", err)
	}
	if n == 0 {
		return ErrFeedNotFound
	}
	return nil
}

// DeleteFeed removes a feed; its items go with it via ON DELETE CASCADE.
func (s *SQLiteStore) DeleteFeed(id string) error {
	res, err := s.db.Exec(`DELETE FROM feeds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	if n == 0 {
		return ErrFeedNotFound
	}
	return nil
}

// ListFolders returns all folders.
func (s *SQLiteStore) ListFolders() ([]*models.Folder, error) {
	rows, err := s.db.Query(`SELECT id, name, view_type FROM folders ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []*models.Folder
	for rows.Next() {
		var folder models.Folder
		var viewType sql.NullString
		if err := rows.Scan(&folder.ID, &folder.Name, &viewType); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		if viewType.Valid {
			vt := models.ViewType(viewType.String)
			folder.ViewType = &vt
		}
		folders = append(folders, &folder)
	}
	return folders, rows.Err()
}

// AddFolder stores a new folder.
func (s *SQLiteStore) AddFolder(folder *models.Folder) error {
	var viewType *string
	if folder.ViewType != nil {
		v := string(*folder.ViewType)
		viewType = &v
	}
	_, err := s.db.Exec(`INSERT INTO folders (id, name, view_type) VALUES (?, ?, ?)`,
		folder.ID, folder.Name, viewType)
	if err != nil {
		return fmt.Errorf("insert folder: %w", err)
	}
	return nil
}

// UpdateFolder rewrites a folder record.
func (s *SQLiteStore) UpdateFolder(folder *models.Folder) error {
	var viewType *string
	if folder.ViewType != nil {
		v := string(*folder.ViewType)
		viewType = &v
	}
	res, err := s.db.Exec(`UPDATE folders SET name = ?, view_type = ? WHERE id = ?`,
		folder.Name, viewType, folder.ID)
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}
	if n == 0 {
		return ErrFolderNotFound
	}
	return nil
}

// DeleteFolder removes a folder and detaches its member feeds.
func (s *SQLiteStore) DeleteFolder(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if n == 0 {
		return ErrFolderNotFound
	}

	if _, err := tx.Exec(`UPDATE feeds SET folder_id = NULL WHERE folder_id = ?`, id); err != nil {
		return fmt.Errorf("detach feeds: %w", err)
	}
	return tx.Commit()
}

// LastUpdated returns the timestamp of the last completed refresh pass.
func (s *SQLiteStore) LastUpdated() (time.Time, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_updated'`).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get last updated: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse last updated: %w", err)
	}
	return t, nil
}

// SetLastUpdated records the completion time of a refresh pass.
func (s *SQLiteStore) SetLastUpdated(t time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO meta (key, value) VALUES ('last_updated', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		t.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("set last updated: %w", err)
	}
	return nil
}

// ReadItems returns the stored items for a feed, newest first with undated
// items last. Query failures are logged and yield an empty slice.
func (s *SQLiteStore) ReadItems(feedID string) []models.Item {
	rows, err := s.db.Query(`
		SELECT feed_id, id, link, title, author, published_at, content,
			content_snippet, read, starred
		FROM items WHERE feed_id = ?
		ORDER BY published_at IS NULL, published_at DESC`, feedID)
	if err != nil {
		log.Printf("storage: read items for feed %s: %v", feedID, err)
		return []models.Item{}
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		var link, title, author, content, snippet sql.NullString
		var publishedAt sql.NullTime
		var read int
		var starred sql.NullBool

		err := rows.Scan(&item.FeedID, &item.ID, &link, &title, &author,
			&publishedAt, &content, &snippet, &read, &starred)
		if err != nil {
			log.Printf("storage: scan item for feed %s: %v", feedID, err)
			return []models.Item{}
		}

		if link.Valid {
			item.Link = &link.String
		}
		if title.Valid {
			item.Title = &title.String
		}
		if author.Valid {
			item.Author = &author.String
		}
		if publishedAt.Valid {
			t := publishedAt.Time
			item.PublishedAt = &t
		}
		if content.Valid {
			item.Content = &content.String
		}
		if snippet.Valid {
			item.ContentSnippet = &snippet.String
		}
		item.Read = read != 0
		if starred.Valid {
			v := starred.Bool
			item.Starred = &v
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		log.Printf("storage: read items for feed %s: %v", feedID, err)
		return []models.Item{}
	}
	return items
}

// WriteItems replaces a feed's item collection in one transaction, dropping
// items outside the merge-time retention window (undated items are kept).
func (s *SQLiteStore) WriteItems(feedID string, items []models.Item) error {
	cutoff := s.policy.Cutoff(s.now())

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("write items for feed %s: %w", feedID, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM items WHERE feed_id = ?`, feedID); err != nil {
		return fmt.Errorf("clear items for feed %s: %w", feedID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO items (feed_id, id, link, title, author, published_at,
			content, content_snippet, read, starred)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare item insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if !retention.Keep(item, cutoff) {
			continue
		}
		var starred *bool
		if item.Starred != nil {
			starred = item.Starred
		}
		_, err := stmt.Exec(feedID, item.ID, item.Link, item.Title,
			item.Author, item.PublishedAt, item.Content, item.ContentSnippet,
			boolToInt(item.Read), starred)
		if err != nil {
			return fmt.Errorf("insert item %s: %w", item.ID, err)
		}
	}
	return tx.Commit()
}

// DeleteItems removes a feed's stored items; absence is not an error.
func (s *SQLiteStore) DeleteItems(feedID string) error {
	if _, err := s.db.Exec(`DELETE FROM items WHERE feed_id = ?`, feedID); err != nil {
		return fmt.Errorf("delete items for feed %s: %w", feedID, err)
	}
	return nil
}

// CleanupExpired removes items older than maxAgeDays across all feeds,
// including items with no parseable date.
func (s *SQLiteStore) CleanupExpired(maxAgeDays int) (int, error) {
	policy := retention.Policy{Days: maxAgeDays}
	cutoff := policy.Cutoff(s.now())

	res, err := s.db.Exec(`
		DELETE FROM items WHERE published_at IS NULL OR published_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup expired items: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cleanup expired items: %w", err)
	}
	return int(n), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
