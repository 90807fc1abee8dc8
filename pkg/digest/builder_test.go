package digest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postdigest/pkg/digest/mocks"
	"github.com/umputun/postdigest/pkg/domain"
)

func makePosts(scores ...float64) []domain.Post {
	res := make([]domain.Post, len(scores))
	for i, s := range scores {
		res[i] = domain.Post{
			Analysis: domain.Analysis{ID: int64(i + 1), ImportanceScore: s, Summary: fmt.Sprintf("summary %d", i+1),
				Topics: []string{"AI"}},
			Item:   domain.Item{ID: int64(i + 1), ExternalID: fmt.Sprintf("%d", 1000+i), Text: fmt.Sprintf("text %d", i+1)},
			Source: domain.Source{Handle: "src"},
		}
	}
	return res
}

func okGenerator() *mocks.GeneratorMock {
	return &mocks.GeneratorMock{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
		return "narrative", nil
	}}
}

func TestRank(t *testing.T) {
	t.Run("fifteen posts split ten and five", func(t *testing.T) {
		scores := []float64{1, 9, 3, 7, 5, 2, 8, 4, 6, 10, 0.5, 1.5, 2.5, 3.5, 4.5}
		highlights, compact := Rank(makePosts(scores...), 10)
		require.Len(t, highlights, 10)
		require.Len(t, compact, 5)
		all := append(append([]domain.Post{}, highlights...), compact...)
		for i := 1; i < len(all); i++ {
			assert.GreaterOrEqual(t, all[i-1].Analysis.ImportanceScore, all[i].Analysis.ImportanceScore)
		}
		assert.InDelta(t, 10, highlights[0].Analysis.ImportanceScore, 1e-9)
		assert.InDelta(t, 2.5, compact[0].Analysis.ImportanceScore, 1e-9)
	})

	t.Run("ties keep incoming order", func(t *testing.T) {
		highlights, compact := Rank(makePosts(5, 7, 5, 7, 5), 3)
		ids := []int64{}
		for _, p := range append(highlights, compact...) {
			ids = append(ids, p.Analysis.ID)
		}
		assert.Equal(t, []int64{2, 4, 1, 3, 5}, ids)
	})

	t.Run("fewer posts than highlight count", func(t *testing.T) {
		highlights, compact := Rank(makePosts(1, 2), 10)
		assert.Len(t, highlights, 2)
		assert.Empty(t, compact)
	})

	t.Run("input not modified", func(t *testing.T) {
		posts := makePosts(1, 2, 3)
		Rank(posts, 1)
		assert.Equal(t, int64(1), posts[0].Analysis.ID)
	})
}

func TestEntries(t *testing.T) {
	highlights, compact := Rank(makePosts(3, 1, 2), 2)
	entries := Entries(highlights, compact)
	assert.Equal(t, []domain.DigestEntry{
		{AnalysisID: 1, Tier: domain.TierHighlight, Rank: 0},
		{AnalysisID: 3, Tier: domain.TierHighlight, Rank: 1},
		{AnalysisID: 2, Tier: domain.TierCompact, Rank: 0},
	}, entries)
}

func TestBuilder_Build(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	posts := makePosts(2, 8, 5)
	posts[1].Analysis.Topics = []string{"LLM", "AI"}

	var created *domain.Digest
	var createdEntries []domain.DigestEntry
	digests := &mocks.DigestStoreMock{
		GetDigestByDateFunc: func(ctx context.Context, date string) (*domain.Digest, error) {
			return nil, domain.ErrNotFound
		},
		CreateDigestFunc: func(ctx context.Context, d *domain.Digest, entries []domain.DigestEntry) error {
			d.ID = 42
			created, createdEntries = d, entries
			return nil
		},
	}
	store := &mocks.PostStoreMock{
		GetQualifyingPostsFunc: func(ctx context.Context, from, to time.Time) ([]domain.Post, error) { return posts, nil },
	}
	gen := okGenerator()

	b := NewBuilder(BuilderParams{Digests: digests, Posts: store, Narrator: NewNarrator(gen, ""),
		HighlightCount: 2, SlugSuffix: "ai-news"})
	res, err := b.Build(context.Background(), date.Add(15*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, BuildCreated, res.Status)
	assert.Nil(t, res.Enrichment, "no enricher configured")
	require.NotNil(t, res.Digest)
	assert.Equal(t, int64(42), res.Digest.ID)
	assert.Equal(t, "2025-01-15", digests.GetDigestByDateCalls()[0].Date)

	q := store.GetQualifyingPostsCalls()[0]
	assert.Equal(t, date, q.From)
	assert.Equal(t, date.AddDate(0, 0, 1), q.To)

	assert.Equal(t, "2025-01-15-ai-news", created.Slug)
	assert.Equal(t, date, created.Date)
	assert.Equal(t, 3, created.TotalCount)
	assert.Equal(t, 2, created.HighlightCount)
	assert.Equal(t, 1, created.CompactCount)
	assert.Equal(t, []string{"AI", "LLM"}, created.Topics)
	assert.Equal(t, "narrative", created.Narrative)
	assert.Equal(t, "Daily digest for 2025-01-15", created.Description)
	assert.Equal(t, []domain.DigestEntry{
		{AnalysisID: 2, Tier: domain.TierHighlight, Rank: 0},
		{AnalysisID: 3, Tier: domain.TierHighlight, Rank: 1},
		{AnalysisID: 1, Tier: domain.TierCompact, Rank: 0},
	}, createdEntries)

	// narrative is made from highlights only
	prompt := gen.GenerateCalls()[0].Prompt
	assert.Contains(t, prompt, "summary 2")
	assert.Contains(t, prompt, "summary 3")
	assert.NotContains(t, prompt, "summary 1")
}

func TestBuilder_BuildLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	digests := &mocks.DigestStoreMock{
		GetDigestByDateFunc: func(ctx context.Context, date string) (*domain.Digest, error) {
			return nil, domain.ErrNotFound
		},
	}
	store := &mocks.PostStoreMock{
		GetQualifyingPostsFunc: func(ctx context.Context, from, to time.Time) ([]domain.Post, error) { return nil, nil },
	}
	b := NewBuilder(BuilderParams{Digests: digests, Posts: store, Narrator: NewNarrator(okGenerator(), ""), Location: loc})
	_, err := b.Build(context.Background(), time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	q := store.GetQualifyingPostsCalls()[0]
	assert.True(t, q.From.Equal(time.Date(2025, 1, 14, 16, 0, 0, 0, time.UTC)), "midnight in UTC+8, got %v", q.From)
	assert.True(t, q.To.Equal(time.Date(2025, 1, 15, 16, 0, 0, 0, time.UTC)))
}

func TestBuilder_BuildExisting(t *testing.T) {
	existing := &domain.Digest{ID: 7, Slug: "2025-01-15-ai-news"}
	digests := &mocks.DigestStoreMock{
		GetDigestByDateFunc: func(ctx context.Context, date string) (*domain.Digest, error) { return existing, nil },
	}
	store := &mocks.PostStoreMock{}
	gen := &mocks.GeneratorMock{}
	b := NewBuilder(BuilderParams{Digests: digests, Posts: store, Narrator: NewNarrator(gen, "")})

	res, err := b.Build(context.Background(), time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, BuildExisting, res.Status)
	assert.Same(t, existing, res.Digest)
	assert.Empty(t, store.GetQualifyingPostsCalls())
	assert.Empty(t, gen.GenerateCalls())
	assert.Empty(t, digests.CreateDigestCalls())
}

func TestBuilder_BuildEmpty(t *testing.T) {
	digests := &mocks.DigestStoreMock{
		GetDigestByDateFunc: func(ctx context.Context, date string) (*domain.Digest, error) {
			return nil, fmt.Errorf("digest: %w", domain.ErrNotFound)
		},
	}
	store := &mocks.PostStoreMock{
		GetQualifyingPostsFunc: func(ctx context.Context, from, to time.Time) ([]domain.Post, error) { return nil, nil },
	}
	b := NewBuilder(BuilderParams{Digests: digests, Posts: store, Narrator: NewNarrator(&mocks.GeneratorMock{}, "")})

	res, err := b.Build(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, BuildEmpty, res.Status)
	assert.Nil(t, res.Digest)
	assert.Empty(t, digests.CreateDigestCalls())
}

func TestBuilder_BuildErrors(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	notFound := func(ctx context.Context, date string) (*domain.Digest, error) { return nil, domain.ErrNotFound }
	qualifying := func(ctx context.Context, from, to time.Time) ([]domain.Post, error) { return makePosts(1), nil }

	tbl := []struct {
		name    string
		digests *mocks.DigestStoreMock
		posts   *mocks.PostStoreMock
		wantErr string
		isDup   bool
	}{
		{name: "lookup fails",
			digests: &mocks.DigestStoreMock{GetDigestByDateFunc: func(ctx context.Context, date string) (*domain.Digest, error) {
				return nil, errors.New("db locked")
			}},
			posts: &mocks.PostStoreMock{}, wantErr: "check digest for 2025-01-15"},
		{name: "posts query fails",
			digests: &mocks.DigestStoreMock{GetDigestByDateFunc: notFound},
			posts: &mocks.PostStoreMock{GetQualifyingPostsFunc: func(ctx context.Context, from, to time.Time) ([]domain.Post, error) {
				return nil, errors.New("db gone")
			}}, wantErr: "get qualifying posts"},
		{name: "duplicate on insert is surfaced",
			digests: &mocks.DigestStoreMock{GetDigestByDateFunc: notFound,
				CreateDigestFunc: func(ctx context.Context, d *domain.Digest, entries []domain.DigestEntry) error {
					return fmt.Errorf("create digest: %w", domain.ErrDuplicateDigest)
				}},
			posts: &mocks.PostStoreMock{GetQualifyingPostsFunc: qualifying}, wantErr: "create digest for 2025-01-15", isDup: true},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(BuilderParams{Digests: tt.digests, Posts: tt.posts, Narrator: NewNarrator(okGenerator(), "")})
			_, err := b.Build(context.Background(), date)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.isDup {
				assert.ErrorIs(t, err, domain.ErrDuplicateDigest)
			}
		})
	}
}

func TestBuilder_BuildRunsEnrichment(t *testing.T) {
	posts := makePosts(3, 2, 1)
	digests := &mocks.DigestStoreMock{
		GetDigestByDateFunc: func(ctx context.Context, date string) (*domain.Digest, error) {
			return nil, domain.ErrNotFound
		},
		CreateDigestFunc: func(ctx context.Context, d *domain.Digest, entries []domain.DigestEntry) error {
			d.ID = 5
			return nil
		},
		GetDigestViewFunc: func(ctx context.Context, id int64) (*domain.DigestView, error) {
			return nil, errors.New("view failed")
		},
	}
	store := &mocks.PostStoreMock{
		GetQualifyingPostsFunc: func(ctx context.Context, from, to time.Time) ([]domain.Post, error) { return posts, nil },
	}
	enricher := NewEnricher(EnricherParams{Digests: digests, Posts: store})
	b := NewBuilder(BuilderParams{Digests: digests, Posts: store, Narrator: NewNarrator(okGenerator(), ""), Enricher: enricher})

	res, err := b.Build(context.Background(), time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err, "enrichment failure never fails the build")
	assert.Equal(t, BuildCreated, res.Status)
	require.NotNil(t, res.Enrichment)
	require.Len(t, digests.GetDigestViewCalls(), 1)
	assert.Equal(t, int64(5), digests.GetDigestViewCalls()[0].ID)
}

func TestBuilder_Slug(t *testing.T) {
	b := NewBuilder(BuilderParams{})
	assert.Equal(t, "2025-03-01-digest", b.Slug(time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)))
	b = NewBuilder(BuilderParams{SlugSuffix: "ai-news"})
	assert.Equal(t, "2025-03-01-ai-news", b.Slug(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
}
