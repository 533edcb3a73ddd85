// ABOUTME: Stable item identity derivation for fetched feed items
// ABOUTME: Uses source guids verbatim, else a deterministic UUIDv5 composite key

package identity

import (
	"strings"

	"github.com/google/uuid"

	"github.com/harper/skim/internal/feedparse"
)

// Resolve derives a stable identifier for a fetched item. It is pure and
// deterministic: the same inputs always produce the same id, across
// refreshes and process restarts, so user state keyed by id survives.
//
// A source-provided guid wins. Without one, the id is a UUIDv5 over a
// composite of link, title, the raw date string, author, and the feed URL.
// The feed URL keeps similarly-titled items in different feeds from
// colliding. A fully degenerate item (all fields empty) still resolves, but
// equally-degenerate siblings share the id; that is an accepted limitation.
func Resolve(item feedparse.RawItem, feedURL string) string {
	if item.GUID != nil && item.GUID.Value != "" {
		return item.GUID.Value
	}

	composite := strings.Join([]string{
		item.Link,
		item.Title,
		item.PublishedRaw,
		item.Author,
		feedURL,
	}, "|")

	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(composite)).String()
}
