// ABOUTME: Canonical raw item shape produced at the ingestion boundary
// ABOUTME: Normalizes loosely-typed source fields (guid union, dual date fields) once

package feedparse

import (
	"encoding/json"
	"time"
)

// GUID is a source-provided item identifier. Sources deliver it either as a
// plain string or as a structured value whose primary text field carries the
// identifier; auxiliary attributes are ignored.
type GUID struct {
	Value string
}

// UnmarshalJSON accepts either a JSON string or an object with a "value"
// field.
func (g *GUID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		g.Value = s
		return nil
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	g.Value = obj.Value
	return nil
}

// MarshalJSON writes the guid back out as a plain string.
func (g GUID) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Value)
}

// RawItem is the single canonical shape all downstream components see.
// Identity resolution uses PublishedRaw (the date string exactly as the
// source provided it) so that ids stay stable even when parsing improves.
type RawItem struct {
	GUID           *GUID
	Link           string
	Title          string
	Author         string
	PublishedRaw   string
	PublishedAt    *time.Time
	Content        string
	ContentSnippet string
}

// rawItemJSON mirrors the wire shape of rss-parser style item records.
type rawItemJSON struct {
	GUID           *GUID  `json:"guid,omitempty"`
	Link           string `json:"link,omitempty"`
	Title          string `json:"title,omitempty"`
	Author         string `json:"author,omitempty"`
	Creator        string `json:"creator,omitempty"`
	ISODate        string `json:"isoDate,omitempty"`
	PubDate        string `json:"pubDate,omitempty"`
	Content        string `json:"content,omitempty"`
	ContentSnippet string `json:"contentSnippet,omitempty"`
}

// UnmarshalJSON normalizes the loose wire shape: author falls back to
// creator, and the publish date is taken from isoDate or pubDate in that
// order. Malformed date strings leave PublishedAt nil.
func (r *RawItem) UnmarshalJSON(data []byte) error {
	var w rawItemJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	r.GUID = w.GUID
	r.Link = w.Link
	r.Title = w.Title
	r.Content = w.Content
	r.ContentSnippet = w.ContentSnippet

	r.Author = w.Author
	if r.Author == "" {
		r.Author = w.Creator
	}

	r.PublishedRaw = w.ISODate
	if r.PublishedRaw == "" {
		r.PublishedRaw = w.PubDate
	}
	r.PublishedAt = ParseDate(r.PublishedRaw)

	return nil
}

// MarshalJSON writes the canonical shape back out using the isoDate field.
func (r RawItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(rawItemJSON{
		GUID:           r.GUID,
		Link:           r.Link,
		Title:          r.Title,
		Author:         r.Author,
		ISODate:        r.PublishedRaw,
		Content:        r.Content,
		ContentSnippet: r.ContentSnippet,
	})
}

// dateLayouts covers ISO-8601 and RFC-2822 style date strings seen in the
// wild, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02",
}

// ParseDate parses an ISO-8601 or RFC-2822 style date string. Returns nil
// for empty or unparsable input; callers treat both the same way.
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
