// ABOUTME: Age-based retention policy for stored feed items
// ABOUTME: Lenient at merge/write time, strict during explicit cleanup

package retention

import (
	"time"

	"github.com/harper/skim/internal/models"
)

// DefaultDays is the default retention window.
const DefaultDays = 30

// Policy decides how long items are kept.
type Policy struct {
	Days int
}

// WindowDays returns the configured retention window, defaulting to
// DefaultDays for zero or negative values.
func (p Policy) WindowDays() int {
	if p.Days <= 0 {
		return DefaultDays
	}
	return p.Days
}

// Cutoff returns the eviction cutoff relative to now.
func (p Policy) Cutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -p.WindowDays())
}

// Keep reports whether an item survives merge-time filtering. Items with no
// parseable publish date are kept: routine refresh favors not losing data.
func Keep(item models.Item, cutoff time.Time) bool {
	if item.PublishedAt == nil {
		return true
	}
	return !item.PublishedAt.Before(cutoff)
}

// KeepStrict reports whether an item survives the standalone cleanup pass.
// Undated items are removed here: cleanup exists to reclaim space, and
// undated orphans are assumed stale. The asymmetry with Keep is intentional.
func KeepStrict(item models.Item, cutoff time.Time) bool {
	if item.PublishedAt == nil {
		return false
	}
	return !item.PublishedAt.Before(cutoff)
}
