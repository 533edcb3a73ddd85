// ABOUTME: Refresh scheduler driving periodic reconciliation of all configured feeds
// ABOUTME: Sequential by design, fault-isolated per feed, guarded against overlapping runs

package refresh

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/harper/skim/internal/feedparse"
	"github.com/harper/skim/internal/fetch"
	"github.com/harper/skim/internal/models"
	"github.com/harper/skim/internal/reconcile"
	"github.com/harper/skim/internal/storage"
)

// DefaultInterval is the period between scheduled refresh passes.
const DefaultInterval = 30 * time.Minute

// Fetcher retrieves a feed document. *fetch.Client implements it; tests
// inject fakes.
type Fetcher interface {
	Fetch(ctx context.Context, url string, etag, lastModified *string) (*fetch.Result, error)
}

// Summary reports the outcome of one refresh pass.
type Summary struct {
	UpdatedCount int
	ErrorCount   int
	CachedCount  int

	// Skipped reports that a pass was already in flight and this call did
	// nothing. It is a distinct outcome, not an error.
	Skipped bool
}

// Scheduler refreshes every configured feed. Feeds are processed one at a
// time to bound outbound network load; one feed's failure never blocks the
// rest, and no failure escalates past the scheduler boundary.
type Scheduler struct {
	store   storage.Store
	engine  *reconcile.Engine
	fetcher Fetcher

	inFlight atomic.Bool
	now      func() time.Time
}

// NewScheduler creates a Scheduler over the given store, engine, and fetcher.
func NewScheduler(store storage.Store, engine *reconcile.Engine, fetcher Fetcher) *Scheduler {
	return &Scheduler{
		store:   store,
		engine:  engine,
		fetcher: fetcher,
		now:     time.Now,
	}
}

// RefreshAll refreshes every configured feed sequentially and returns the
// counts. An empty feed list is a no-op that touches nothing. If a pass is
// already running, the call returns immediately with Skipped set.
func (s *Scheduler) RefreshAll(ctx context.Context) Summary {
	if !s.inFlight.CompareAndSwap(false, true) {
		log.Printf("refresh: pass already in flight, skipping")
		return Summary{Skipped: true}
	}
	defer s.inFlight.Store(false)

	feeds, err := s.store.ListFeeds()
	if err != nil {
		log.Printf("refresh: list feeds: %v", err)
		return Summary{}
	}
	if len(feeds) == 0 {
		return Summary{}
	}

	var summary Summary
	for _, feed := range feeds {
		switch outcome := s.RefreshFeed(ctx, feed); outcome {
		case OutcomeUpdated:
			summary.UpdatedCount++
		case OutcomeCached:
			summary.CachedCount++
		case OutcomeError:
			summary.ErrorCount++
		}
	}

	// One global timestamp write per pass, after every feed was attempted.
	if err := s.store.SetLastUpdated(s.now()); err != nil {
		log.Printf("refresh: record pass completion: %v", err)
	}

	log.Printf("refresh: pass complete, updated=%d cached=%d errors=%d",
		summary.UpdatedCount, summary.CachedCount, summary.ErrorCount)
	return summary
}

// Outcome classifies a single feed's refresh.
type Outcome int

const (
	OutcomeUpdated Outcome = iota
	OutcomeCached
	OutcomeError
)

// RefreshFeed fetches, parses, and reconciles one feed, updating its
// metadata record. All failures resolve to OutcomeError plus a logged
// diagnostic; nothing propagates.
func (s *Scheduler) RefreshFeed(ctx context.Context, feed *models.Feed) Outcome {
	result, err := s.fetcher.Fetch(ctx, feed.URL, feed.ETag, feed.LastModified)
	if err != nil {
		log.Printf("refresh: fetch %s: %v", feed.URL, err)
		s.recordFeedError(feed, err.Error())
		return OutcomeError
	}

	if result.NotModified {
		return OutcomeCached
	}

	raw, err := feedparse.Parse(result.Body)
	if err != nil {
		log.Printf("refresh: parse %s: %v", feed.URL, err)
		s.recordFeedError(feed, "parse feed: "+err.Error())
		return OutcomeError
	}

	if err := s.engine.Reconcile(feed.ID, feed.URL, raw.Items); err != nil {
		log.Printf("refresh: %v", err)
		s.recordFeedError(feed, err.Error())
		return OutcomeError
	}

	// Autofill missing channel metadata from the parse.
	if (feed.Title == nil || *feed.Title == "") && raw.Title != "" {
		title := raw.Title
		feed.Title = &title
	}
	if (feed.Description == nil || *feed.Description == "") && raw.Description != "" {
		desc := raw.Description
		feed.Description = &desc
	}

	feed.SetCacheHeaders(result.ETag, result.LastModified)
	feed.ClearError()
	reconciled := s.now()
	feed.LastUpdated = &reconciled

	if err := s.store.UpdateFeed(feed); err != nil {
		log.Printf("refresh: update metadata for %s: %v", feed.URL, err)
	}
	return OutcomeUpdated
}

// recordFeedError persists fetch/parse failure bookkeeping on the feed.
func (s *Scheduler) recordFeedError(feed *models.Feed, msg string) {
	feed.RecordError(msg)
	if err := s.store.UpdateFeed(feed); err != nil {
		log.Printf("refresh: record error for %s: %v", feed.URL, err)
	}
}

// Loop runs an initial refresh pass and then one per interval until the
// context is cancelled. The guard in RefreshAll keeps a slow pass from
// overlapping the next tick.
func (s *Scheduler) Loop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	s.RefreshAll(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RefreshAll(ctx)
		}
	}
}
