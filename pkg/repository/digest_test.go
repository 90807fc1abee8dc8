package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postdigest/pkg/domain"
)

// seedAnalyses creates n relevant analyses of posts on day and returns them in id order
func seedAnalyses(t *testing.T, repos *Repositories, day time.Time, n int) []domain.Post {
	t.Helper()
	ctx := context.Background()
	src := createTestSource(t, repos, "alice")
	var analyses []domain.Analysis
	for i := 0; i < n; i++ {
		item := createTestItem(t, repos, src.ID, fmt.Sprintf("%d", 1000+i), day.Add(time.Duration(i)*time.Minute), float64(i))
		analyses = append(analyses, domain.Analysis{ItemID: item.ID, Relevant: true, ImportanceScore: float64(i)})
	}
	require.NoError(t, repos.Analysis.SaveAnalyses(ctx, analyses))
	posts, err := repos.Analysis.GetQualifyingPosts(ctx, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, posts, n)
	return posts
}

func TestDigestRepository_CreateAndGet(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	posts := seedAnalyses(t, repos, day, 3)

	d := &domain.Digest{Date: day, Slug: "2024-03-10-ai-news", TotalCount: 3, HighlightCount: 2, CompactCount: 1,
		Topics: []string{"A", "B"}, Narrative: "story", Description: "desc"}
	entries := []domain.DigestEntry{
		{AnalysisID: posts[2].Analysis.ID, Tier: domain.TierHighlight, Rank: 0},
		{AnalysisID: posts[1].Analysis.ID, Tier: domain.TierHighlight, Rank: 1},
		{AnalysisID: posts[0].Analysis.ID, Tier: domain.TierCompact, Rank: 0},
	}
	require.NoError(t, repos.Digest.CreateDigest(ctx, d, entries))
	assert.NotZero(t, d.ID)
	for _, e := range entries {
		assert.Equal(t, d.ID, e.DigestID)
		assert.NotZero(t, e.ID)
	}

	for name, get := range map[string]func() (*domain.Digest, error){
		"by id":   func() (*domain.Digest, error) { return repos.Digest.GetDigest(ctx, d.ID) },
		"by date": func() (*domain.Digest, error) { return repos.Digest.GetDigestByDate(ctx, "2024-03-10") },
		"by slug": func() (*domain.Digest, error) { return repos.Digest.GetDigestBySlug(ctx, "2024-03-10-ai-news") },
	} {
		t.Run(name, func(t *testing.T) {
			got, err := get()
			require.NoError(t, err)
			assert.Equal(t, d.ID, got.ID)
			assert.Equal(t, "2024-03-10", got.DateString())
			assert.Equal(t, []string{"A", "B"}, got.Topics)
			assert.Equal(t, "story", got.Narrative)
			assert.Equal(t, 3, got.TotalCount)
			assert.Nil(t, got.SentAt)
		})
	}

	_, err := repos.Digest.GetDigestByDate(ctx, "2024-03-11")
	require.ErrorIs(t, err, domain.ErrNotFound)

	t.Run("view orders tiers by rank", func(t *testing.T) {
		view, err := repos.Digest.GetDigestView(ctx, d.ID)
		require.NoError(t, err)
		require.Len(t, view.Highlights, 2)
		require.Len(t, view.Compact, 1)
		assert.Equal(t, posts[2].Analysis.ID, view.Highlights[0].Analysis.ID)
		assert.Equal(t, posts[1].Analysis.ID, view.Highlights[1].Analysis.ID)
		assert.Equal(t, posts[0].Analysis.ID, view.Compact[0].Analysis.ID)
		assert.Equal(t, "alice", view.Highlights[0].Source.Handle)
	})

	t.Run("duplicate date", func(t *testing.T) {
		dup := &domain.Digest{Date: day, Slug: "other-slug"}
		err := repos.Digest.CreateDigest(ctx, dup, nil)
		require.ErrorIs(t, err, domain.ErrDuplicateDigest)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		dup := &domain.Digest{Date: day.AddDate(0, 0, 1), Slug: "2024-03-10-ai-news"}
		err := repos.Digest.CreateDigest(ctx, dup, nil)
		require.ErrorIs(t, err, domain.ErrDuplicateDigest)
	})

	t.Run("duplicate rank rolls back digest", func(t *testing.T) {
		next := &domain.Digest{Date: day.AddDate(0, 0, 2), Slug: "2024-03-12-ai-news"}
		err := repos.Digest.CreateDigest(ctx, next, []domain.DigestEntry{
			{AnalysisID: posts[0].Analysis.ID, Tier: domain.TierHighlight, Rank: 0},
			{AnalysisID: posts[1].Analysis.ID, Tier: domain.TierHighlight, Rank: 0},
		})
		require.Error(t, err)
		_, err = repos.Digest.GetDigestByDate(ctx, "2024-03-12")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDigestRepository_ListAndMarkSent(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		date := base.AddDate(0, 0, i)
		d := &domain.Digest{Date: date, Slug: date.Format(domain.DateLayout) + "-ai-news"}
		require.NoError(t, repos.Digest.CreateDigest(ctx, d, nil))
	}

	list, total, err := repos.Digest.ListDigests(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-03-12", list[0].DateString())
	assert.Equal(t, "2024-03-11", list[1].DateString())

	list, _, err = repos.Digest.ListDigests(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2024-03-10", list[0].DateString())

	sentAt := time.Date(2024, 3, 11, 8, 0, 5, 0, time.UTC)
	require.NoError(t, repos.Digest.MarkSent(ctx, list[0].ID, sentAt, "me@example.com"))
	got, err := repos.Digest.GetDigest(ctx, list[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got.SentAt)
	assert.True(t, sentAt.Equal(*got.SentAt))
	assert.Equal(t, "me@example.com", got.Recipient)
}
