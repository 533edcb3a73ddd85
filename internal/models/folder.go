// ABOUTME: Folder model for grouping feeds in the sidebar
// ABOUTME: Feeds reference folders by ID; folders never reference feeds

package models

import "github.com/google/uuid"

// Folder is a named grouping of feeds. Deleting a folder detaches its feeds
// rather than deleting them.
type Folder struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	ViewType *ViewType `json:"viewType,omitempty"`
}

// NewFolder creates a new Folder with a generated ID.
func NewFolder(name string) *Folder {
	return &Folder{
		ID:   uuid.New().String(),
		Name: name,
	}
}
