// ABOUTME: Item model representing a single ingested feed article with user state
// ABOUTME: Display fields come from the source; read/starred belong to the user

package models

import "time"

// Item represents one article/entry belonging to a feed.
//
// The ID is stable across refreshes (see the identity package) and unique
// within the owning feed's collection. Display fields are overwritten on
// every refresh; Read and Starred are user state and survive refreshes.
type Item struct {
	ID             string     `json:"id"`
	FeedID         string     `json:"feedId"`
	Link           *string    `json:"link,omitempty"`
	Title          *string    `json:"title,omitempty"`
	Author         *string    `json:"author,omitempty"`
	PublishedAt    *time.Time `json:"publishedAt,omitempty"`
	Content        *string    `json:"content,omitempty"`
	ContentSnippet *string    `json:"contentSnippet,omitempty"`
	Read           bool       `json:"read"`
	Starred        *bool      `json:"starred,omitempty"`
}

// IsStarred reports whether the item carries a starred flag set to true.
func (i *Item) IsStarred() bool {
	return i.Starred != nil && *i.Starred
}
