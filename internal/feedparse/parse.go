// ABOUTME: RSS/Atom feed parsing using the gofeed library
// ABOUTME: Converts gofeed items into the canonical RawItem shape at the boundary

package feedparse

import (
	"strings"

	"github.com/mmcdole/gofeed"
)

// RawFeed is a parsed feed document reduced to the fields the ingestion
// pipeline cares about.
type RawFeed struct {
	Title       string
	Description string
	Items       []RawItem
}

// Parse parses RSS or Atom feed data and returns the normalized RawFeed.
func Parse(data []byte) (*RawFeed, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseString(string(data))
	if err != nil {
		return nil, err
	}

	raw := &RawFeed{
		Title:       feed.Title,
		Description: feed.Description,
		Items:       make([]RawItem, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		raw.Items = append(raw.Items, fromGofeed(item))
	}

	return raw, nil
}

// fromGofeed normalizes one gofeed item. gofeed always surfaces guids as
// plain strings; an empty guid becomes a nil GUID so identity resolution
// falls through to the composite key.
func fromGofeed(item *gofeed.Item) RawItem {
	raw := RawItem{
		Link:  item.Link,
		Title: item.Title,
	}

	if item.GUID != "" {
		raw.GUID = &GUID{Value: item.GUID}
	}

	if item.Author != nil {
		raw.Author = item.Author.Name
	}

	// Keep the source's own date string for identity; prefer the published
	// date over the updated date for both forms.
	raw.PublishedRaw = item.Published
	if raw.PublishedRaw == "" {
		raw.PublishedRaw = item.Updated
	}
	if item.PublishedParsed != nil {
		raw.PublishedAt = item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		raw.PublishedAt = item.UpdatedParsed
	}

	if item.Content != "" {
		raw.Content = strings.TrimSpace(item.Content)
	} else {
		raw.Content = strings.TrimSpace(item.Description)
	}
	raw.ContentSnippet = strings.TrimSpace(item.Description)

	return raw
}
