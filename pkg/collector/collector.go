// Package collector ingests posts of monitored sources and stamps each with its engagement score
package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/postdigest/pkg/domain"
	"github.com/umputun/postdigest/pkg/metrics"
	"github.com/umputun/postdigest/pkg/scoring"
)

//go:generate moq -out mocks/source_store.go -pkg mocks -skip-ensure -fmt goimports . SourceStore
//go:generate moq -out mocks/item_store.go -pkg mocks -skip-ensure -fmt goimports . ItemStore
//go:generate moq -out mocks/client.go -pkg mocks -skip-ensure -fmt goimports . Client

// SourceStore persists monitored sources
type SourceStore interface {
	GetSources(ctx context.Context, activeOnly bool) ([]domain.Source, error)
	CreateSource(ctx context.Context, src *domain.Source) error
	UpdateSourceCursor(ctx context.Context, id int64, cursor string) error
}

// ItemStore persists collected items
type ItemStore interface {
	ItemExists(ctx context.Context, externalID string) (bool, error)
	CreateItem(ctx context.Context, item *domain.Item) error
}

// Client is an ingestion client of one kind of source
type Client interface {
	// Resolve returns the profile behind a reference, a handle for the api or a feed url for rss
	Resolve(ctx context.Context, ref string) (domain.SourceProfile, error)
	// Fetch returns items of the source newer than its cursor, oldest first
	Fetch(ctx context.Context, src domain.Source) ([]domain.RawItem, error)
}

// ErrSourceNotFound is returned when a handle or feed can't be resolved
var ErrSourceNotFound = errors.New("source not found")

// Params for collector creation
type Params struct {
	Sources    SourceStore
	Items      ItemStore
	API        Client // social api client, optional
	RSS        Client // feed client, optional
	Weights    scoring.Weights
	MaxWorkers int
}

// Collector pulls new items of all active sources
type Collector struct {
	sources    SourceStore
	items      ItemStore
	api        Client
	rss        Client
	weights    scoring.Weights
	maxWorkers int
}

// Stats summarizes one collection run
type Stats struct {
	Sources int
	Failed  int
	Fetched int
	Stored  int
	Skipped int // already known items
}

// NewCollector makes a collector
func NewCollector(p Params) *Collector {
	if p.MaxWorkers <= 0 {
		p.MaxWorkers = 4
	}
	return &Collector{sources: p.Sources, items: p.Items, api: p.API, rss: p.RSS, weights: p.Weights,
		maxWorkers: p.MaxWorkers}
}

// CollectAll collects every active source with bounded concurrency. A failed source is logged and
// counted, only a failure to list sources is returned.
func (c *Collector) CollectAll(ctx context.Context) (Stats, error) {
	sources, err := c.sources.GetSources(ctx, true)
	if err != nil {
		return Stats{}, fmt.Errorf("get active sources: %w", err)
	}

	var mu sync.Mutex
	stats := Stats{Sources: len(sources)}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxWorkers)
	for _, src := range sources {
		g.Go(func() error {
			res, err := c.collectSource(gctx, src)
			mu.Lock()
			defer mu.Unlock()
			stats.Fetched += res.Fetched
			stats.Stored += res.Stored
			stats.Skipped += res.Skipped
			if err != nil {
				log.Printf("[WARN] failed to collect @%s: %v", src.Handle, err)
				metrics.CollectErrors.Inc()
				stats.Failed++
			}
			return nil
		})
	}
	_ = g.Wait()

	log.Printf("[INFO] collected %d new items from %d sources, %d failed, %d already known",
		stats.Stored, stats.Sources, stats.Failed, stats.Skipped)
	return stats, nil
}

// collectSource stores new items of one source and advances its cursor to the newest id seen
func (c *Collector) collectSource(ctx context.Context, src domain.Source) (Stats, error) {
	res := Stats{}
	client := c.clientFor(src)
	if client == nil {
		return res, fmt.Errorf("no client for source %d", src.ID)
	}

	raw, err := client.Fetch(ctx, src)
	if err != nil {
		return res, fmt.Errorf("fetch: %w", err)
	}
	res.Fetched = len(raw)

	cursor := src.Cursor
	for _, r := range raw {
		exists, err := c.items.ItemExists(ctx, r.ExternalID)
		if err != nil {
			return res, fmt.Errorf("check item %s: %w", r.ExternalID, err)
		}
		if newerID(r.ExternalID, cursor) {
			cursor = r.ExternalID
		}
		if exists {
			res.Skipped++
			continue
		}
		item := &domain.Item{
			ExternalID:      r.ExternalID,
			SourceID:        src.ID,
			Text:            r.Text,
			URL:             r.URL,
			Counts:          r.Counts,
			EngagementScore: c.weights.Engagement(r.Counts),
			CreatedAt:       r.CreatedAt,
		}
		if err := c.items.CreateItem(ctx, item); err != nil {
			return res, fmt.Errorf("store item %s: %w", r.ExternalID, err)
		}
		res.Stored++
	}
	metrics.CollectedItems.WithLabelValues(src.Handle).Add(float64(res.Stored))

	if cursor != src.Cursor && src.FeedURL == "" {
		if err := c.sources.UpdateSourceCursor(ctx, src.ID, cursor); err != nil {
			return res, fmt.Errorf("update cursor: %w", err)
		}
	}
	log.Printf("[DEBUG] @%s: %d fetched, %d stored", src.Handle, res.Fetched, res.Stored)
	return res, nil
}

// AddSource resolves a handle, or a feed url if given, and stores it as an active source.
// A source with the same external id is returned as stored.
func (c *Collector) AddSource(ctx context.Context, handle, feedURL string) (*domain.Source, error) {
	client, ref := c.api, handle
	if feedURL != "" {
		client, ref = c.rss, feedURL
	}
	if client == nil {
		return nil, errors.New("no ingestion client for source")
	}

	profile, err := client.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", ref, err)
	}
	src := &domain.Source{
		ExternalID:  profile.ExternalID,
		Handle:      profile.Handle,
		DisplayName: profile.DisplayName,
		FeedURL:     feedURL,
		Active:      true,
	}
	if handle != "" && feedURL != "" {
		src.Handle = handle
	}
	if err := c.sources.CreateSource(ctx, src); err != nil {
		return nil, fmt.Errorf("store source %s: %w", ref, err)
	}
	log.Printf("[INFO] source @%s (%s) added, id=%d", src.Handle, src.ExternalID, src.ID)
	return src, nil
}

func (c *Collector) clientFor(src domain.Source) Client {
	if src.FeedURL != "" {
		return c.rss
	}
	return c.api
}

// newerID reports whether id a is newer than b. Post ids are decimal strings growing over time,
// so a longer id is newer and equal length ids compare lexically.
func newerID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a > b
}
