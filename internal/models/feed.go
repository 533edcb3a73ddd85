// ABOUTME: Feed model representing an RSS/Atom subscription with HTTP caching support
// ABOUTME: Items are stored separately per feed and only hydrated into Feed on read

package models

import (
	"time"

	"github.com/google/uuid"
)

// ViewType is a display hint for a feed's items. The ingestion core passes
// it through untouched.
type ViewType string

const (
	ViewArticle ViewType = "article"
	ViewPhoto   ViewType = "photo"
	ViewVideo   ViewType = "video"
)

// Feed represents an RSS/Atom feed subscription.
//
// Items is populated only when a caller asks for a hydrated view; the
// persisted metadata record never embeds item bodies. Legacy records that
// still carry inline items are split on first read by the file store.
type Feed struct {
	ID              string     `json:"id"`
	URL             string     `json:"url"`
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	ViewType        ViewType   `json:"viewType,omitempty"`
	FolderID        *string    `json:"folderId,omitempty"`
	LoadFullContent bool       `json:"loadFullContent,omitempty"`
	ETag            *string    `json:"etag,omitempty"`
	LastModified    *string    `json:"lastModified,omitempty"`
	LastUpdated     *time.Time `json:"lastUpdated,omitempty"`
	LastError       *string    `json:"lastError,omitempty"`
	ErrorCount      int        `json:"errorCount,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`

	Items []Item `json:"items,omitempty"`
}

// NewFeed creates a new Feed with a generated ID and creation timestamp.
func NewFeed(url string) *Feed {
	return &Feed{
		ID:        uuid.New().String(),
		URL:       url,
		ViewType:  ViewArticle,
		CreatedAt: time.Now(),
	}
}

// DisplayName returns the feed title, falling back to its URL.
func (f *Feed) DisplayName() string {
	if f.Title != nil && *f.Title != "" {
		return *f.Title
	}
	return f.URL
}

// SetCacheHeaders updates the feed's HTTP caching headers for conditional requests.
func (f *Feed) SetCacheHeaders(etag, lastModified string) {
	if etag != "" {
		f.ETag = &etag
	}
	if lastModified != "" {
		f.LastModified = &lastModified
	}
}

// RecordError stores a fetch/parse failure on the feed record.
func (f *Feed) RecordError(msg string) {
	f.LastError = &msg
	f.ErrorCount++
}

// ClearError resets the feed's error bookkeeping after a successful refresh.
func (f *Feed) ClearError() {
	f.LastError = nil
	f.ErrorCount = 0
}
