// Package digest builds the daily digest: ranks the day's relevant posts, splits them into
// highlight and compact tiers, writes the narrative and runs tiered enrichment.
package digest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/postdigest/pkg/domain"
	"github.com/umputun/postdigest/pkg/metrics"
)

//go:generate moq -out mocks/digest_store.go -pkg mocks -skip-ensure -fmt goimports . DigestStore
//go:generate moq -out mocks/post_store.go -pkg mocks -skip-ensure -fmt goimports . PostStore
//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . Generator
//go:generate moq -out mocks/translator.go -pkg mocks -skip-ensure -fmt goimports . Translator
//go:generate moq -out mocks/renderer.go -pkg mocks -skip-ensure -fmt goimports . Renderer
//go:generate moq -out mocks/uploader.go -pkg mocks -skip-ensure -fmt goimports . Uploader

// DigestStore persists digests
type DigestStore interface {
	GetDigestByDate(ctx context.Context, date string) (*domain.Digest, error)
	CreateDigest(ctx context.Context, d *domain.Digest, entries []domain.DigestEntry) error
	GetDigestView(ctx context.Context, id int64) (*domain.DigestView, error)
}

// PostStore reads analyzed posts and stores enrichment results
type PostStore interface {
	GetQualifyingPosts(ctx context.Context, from, to time.Time) ([]domain.Post, error)
	UpdateTranslation(ctx context.Context, analysisID int64, translation string) (bool, error)
	UpdateScreenshot(ctx context.Context, analysisID int64, url string, at time.Time) (bool, error)
}

// Generator produces free text from a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Translator translates a post text
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Renderer captures an image of a post page
type Renderer interface {
	Capture(ctx context.Context, url string) ([]byte, error)
}

// Uploader stores an image and returns its public url
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte) (string, error)
}

// BuildStatus is the outcome of a digest build
type BuildStatus string

// build outcomes
const (
	BuildCreated  BuildStatus = "created"
	BuildExisting BuildStatus = "existing"
	BuildEmpty    BuildStatus = "empty"
)

// BuildResult reports what a build did. Digest is nil for BuildEmpty,
// Entries and Enrichment are set for BuildCreated only.
type BuildResult struct {
	Status     BuildStatus
	Digest     *domain.Digest
	Entries    []domain.DigestEntry
	Enrichment *EnrichResult
}

// BuilderParams for builder creation
type BuilderParams struct {
	Digests        DigestStore
	Posts          PostStore
	Narrator       *Narrator
	Enricher       *Enricher // optional, no enrichment if nil
	HighlightCount int
	SlugSuffix     string
	Location       *time.Location // day boundaries, UTC if nil
}

// Builder makes at most one digest per calendar date
type Builder struct {
	digests        DigestStore
	posts          PostStore
	narrator       *Narrator
	enricher       *Enricher
	highlightCount int
	slugSuffix     string
	location       *time.Location
}

// NewBuilder makes a digest builder
func NewBuilder(p BuilderParams) *Builder {
	if p.HighlightCount <= 0 {
		p.HighlightCount = 10
	}
	if p.SlugSuffix == "" {
		p.SlugSuffix = "digest"
	}
	if p.Location == nil {
		p.Location = time.UTC
	}
	return &Builder{
		digests:        p.Digests,
		posts:          p.Posts,
		narrator:       p.Narrator,
		enricher:       p.Enricher,
		highlightCount: p.HighlightCount,
		slugSuffix:     p.SlugSuffix,
		location:       p.Location,
	}
}

// Slug returns the url slug of the digest for date, YYYY-MM-DD-<suffix>
func (b *Builder) Slug(date time.Time) string {
	return date.Format(domain.DateLayout) + "-" + b.slugSuffix
}

// Build makes the digest of the calendar date of date. Posts qualify by their creation time within
// the day in the builder's location. An existing digest is returned unchanged, a day without relevant
// posts gives BuildEmpty. Enrichment runs after the digest is committed and never fails the build.
func (b *Builder) Build(ctx context.Context, date time.Time) (res BuildResult, err error) {
	start := time.Now()
	defer func() {
		status := string(res.Status)
		if err != nil {
			status = "error"
		}
		metrics.ObserveDigestBuild(status, start)
	}()

	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dateStr := day.Format(domain.DateLayout)

	existing, err := b.digests.GetDigestByDate(ctx, dateStr)
	switch {
	case err == nil:
		log.Printf("[WARN] digest for %s already exists, id=%d", dateStr, existing.ID)
		return BuildResult{Status: BuildExisting, Digest: existing}, nil
	case !errors.Is(err, domain.ErrNotFound):
		return BuildResult{}, fmt.Errorf("check digest for %s: %w", dateStr, err)
	}

	from := time.Date(y, m, d, 0, 0, 0, 0, b.location)
	to := from.AddDate(0, 0, 1)
	posts, err := b.posts.GetQualifyingPosts(ctx, from, to)
	if err != nil {
		return BuildResult{}, fmt.Errorf("get qualifying posts for %s: %w", dateStr, err)
	}
	if len(posts) == 0 {
		log.Printf("[INFO] no relevant posts for %s, digest not created", dateStr)
		return BuildResult{Status: BuildEmpty}, nil
	}
	log.Printf("[INFO] found %d relevant posts for %s", len(posts), dateStr)

	highlights, compact := Rank(posts, b.highlightCount)

	topicLists := make([][]string, len(posts))
	for i, p := range posts {
		topicLists[i] = p.Analysis.Topics
	}

	dg := &domain.Digest{
		Date:           day,
		Slug:           b.Slug(day),
		TotalCount:     len(posts),
		HighlightCount: len(highlights),
		CompactCount:   len(compact),
		Topics:         ExtractTopics(topicLists, MaxTopics),
		Narrative:      b.narrator.Narrate(ctx, highlights),
		Description:    "Daily digest for " + dateStr,
	}
	entries := Entries(highlights, compact)
	if err := b.digests.CreateDigest(ctx, dg, entries); err != nil {
		return BuildResult{}, fmt.Errorf("create digest for %s: %w", dateStr, err)
	}
	log.Printf("[INFO] created digest %d (%s): %d highlights, %d compact",
		dg.ID, dg.Slug, dg.HighlightCount, dg.CompactCount)

	res = BuildResult{Status: BuildCreated, Digest: dg, Entries: entries}
	if b.enricher != nil {
		enrich, err := b.enricher.Enrich(ctx, dg.ID)
		if err != nil {
			log.Printf("[WARN] enrichment of digest %d failed: %v", dg.ID, err)
		}
		res.Enrichment = &enrich
	}
	return res, nil
}

// Rank sorts posts by descending importance and splits them at highlightCount.
// Posts with equal importance keep their incoming order.
func Rank(posts []domain.Post, highlightCount int) (highlights, compact []domain.Post) {
	sorted := make([]domain.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Analysis.ImportanceScore > sorted[j].Analysis.ImportanceScore
	})
	split := min(max(highlightCount, 0), len(sorted))
	return sorted[:split], sorted[split:]
}

// Entries places ranked posts into tiers with 0-based ranks in their order
func Entries(highlights, compact []domain.Post) []domain.DigestEntry {
	res := make([]domain.DigestEntry, 0, len(highlights)+len(compact))
	for i, p := range highlights {
		res = append(res, domain.DigestEntry{AnalysisID: p.Analysis.ID, Tier: domain.TierHighlight, Rank: i})
	}
	for i, p := range compact {
		res = append(res, domain.DigestEntry{AnalysisID: p.Analysis.ID, Tier: domain.TierCompact, Rank: i})
	}
	return res
}
