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

func TestAnalysisRepository_SaveAnalyses(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	src := createTestSource(t, repos, "alice")
	now := time.Now().UTC()
	relevant := createTestItem(t, repos, src.ID, "1", now, 10)
	irrelevant := createTestItem(t, repos, src.ID, "2", now, 20)

	err := repos.Analysis.SaveAnalyses(ctx, []domain.Analysis{
		{ItemID: relevant.ID, Relevant: true, RelevanceScore: 8, Summary: "big release",
			Topics: []string{"LLM", "OpenAI"}, ImportanceScore: 5.9},
		{ItemID: irrelevant.ID, Relevant: false, RelevanceScore: 1, Summary: "ignored", Topics: []string{"cats"},
			ImportanceScore: 1.2},
	})
	require.NoError(t, err)

	a, err := repos.Analysis.GetAnalysisByItem(ctx, relevant.ID)
	require.NoError(t, err)
	assert.True(t, a.Relevant)
	assert.InDelta(t, 8.0, a.RelevanceScore, 1e-9)
	assert.Equal(t, "big release", a.Summary)
	assert.Equal(t, []string{"LLM", "OpenAI"}, a.Topics)
	assert.InDelta(t, 5.9, a.ImportanceScore, 1e-9)
	assert.Empty(t, a.Translation)
	assert.Empty(t, a.ScreenshotURL)
	assert.Nil(t, a.ScreenshotAt)

	b, err := repos.Analysis.GetAnalysisByItem(ctx, irrelevant.ID)
	require.NoError(t, err)
	assert.False(t, b.Relevant)
	assert.Empty(t, b.Summary, "summary kept for relevant posts only")
	assert.Empty(t, b.Topics)

	for _, id := range []int64{relevant.ID, irrelevant.ID} {
		item, err := repos.Item.GetItem(ctx, id)
		require.NoError(t, err)
		assert.True(t, item.Enriched)
	}

	t.Run("second analysis of the same item is ignored", func(t *testing.T) {
		require.NoError(t, repos.Analysis.SaveAnalyses(ctx, []domain.Analysis{{ItemID: relevant.ID, Relevant: false}}))
		a, err := repos.Analysis.GetAnalysisByItem(ctx, relevant.ID)
		require.NoError(t, err)
		assert.True(t, a.Relevant)
	})

	t.Run("empty batch", func(t *testing.T) {
		require.NoError(t, repos.Analysis.SaveAnalyses(ctx, nil))
	})

	t.Run("unknown item rolls back the whole batch", func(t *testing.T) {
		item := createTestItem(t, repos, src.ID, "3", now, 1)
		err := repos.Analysis.SaveAnalyses(ctx, []domain.Analysis{{ItemID: item.ID}, {ItemID: 9999}})
		require.Error(t, err)
		got, err := repos.Item.GetItem(ctx, item.ID)
		require.NoError(t, err)
		assert.False(t, got.Enriched)
		_, err = repos.Analysis.GetAnalysisByItem(ctx, item.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAnalysisRepository_GetQualifyingPosts(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	src := createTestSource(t, repos, "alice")
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	times := []time.Time{
		day.Add(-time.Second),               // previous day
		day,                                 // first instant of the day
		day.Add(12 * time.Hour),             // midday
		day.Add(24*time.Hour - time.Second), // 23:59:59
		day.Add(24 * time.Hour),             // next day
		day.Add(6 * time.Hour),              // irrelevant
	}
	var analyses []domain.Analysis
	for i, ts := range times {
		item := createTestItem(t, repos, src.ID, fmt.Sprintf("%d", i), ts, float64(i))
		analyses = append(analyses, domain.Analysis{ItemID: item.ID, Relevant: i != 5, ImportanceScore: float64(i),
			Summary: fmt.Sprintf("s%d", i)})
	}
	require.NoError(t, repos.Analysis.SaveAnalyses(ctx, analyses))

	posts, err := repos.Analysis.GetQualifyingPosts(ctx, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "1", posts[0].Item.ExternalID)
	assert.Equal(t, "2", posts[1].Item.ExternalID)
	assert.Equal(t, "3", posts[2].Item.ExternalID)
	assert.Less(t, posts[0].Analysis.ID, posts[1].Analysis.ID)
	assert.Equal(t, "alice", posts[0].Source.Handle)
	assert.Equal(t, "s1", posts[0].Analysis.Summary)
	assert.Equal(t, domain.Counts{Likes: 10, Reshares: 2, Replies: 1, Bookmarks: 3}, posts[0].Item.Counts)
}

func TestAnalysisRepository_GetPosts(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	src := createTestSource(t, repos, "alice")
	now := time.Now().UTC()
	var analyses []domain.Analysis
	for i, score := range []float64{3, 9, 5, 7} {
		item := createTestItem(t, repos, src.ID, fmt.Sprintf("%d", i), now, 1)
		analyses = append(analyses, domain.Analysis{ItemID: item.ID, Relevant: i != 3, ImportanceScore: score})
	}
	require.NoError(t, repos.Analysis.SaveAnalyses(ctx, analyses))

	posts, err := repos.Analysis.GetPosts(ctx, PostFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 4)
	assert.InDelta(t, 9.0, posts[0].Analysis.ImportanceScore, 1e-9)
	assert.InDelta(t, 7.0, posts[1].Analysis.ImportanceScore, 1e-9)

	posts, err = repos.Analysis.GetPosts(ctx, PostFilter{RelevantOnly: true, Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.InDelta(t, 5.0, posts[0].Analysis.ImportanceScore, 1e-9)
	assert.InDelta(t, 3.0, posts[1].Analysis.ImportanceScore, 1e-9)
}

func TestAnalysisRepository_ConditionalUpdates(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	src := createTestSource(t, repos, "alice")
	item := createTestItem(t, repos, src.ID, "1", time.Now().UTC(), 1)
	require.NoError(t, repos.Analysis.SaveAnalyses(ctx, []domain.Analysis{{ItemID: item.ID, Relevant: true}}))
	a, err := repos.Analysis.GetAnalysisByItem(ctx, item.ID)
	require.NoError(t, err)

	t.Run("translation set once", func(t *testing.T) {
		updated, err := repos.Analysis.UpdateTranslation(ctx, a.ID, "first")
		require.NoError(t, err)
		assert.True(t, updated)

		updated, err = repos.Analysis.UpdateTranslation(ctx, a.ID, "second")
		require.NoError(t, err)
		assert.False(t, updated)

		got, err := repos.Analysis.GetAnalysisByItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "first", got.Translation)
	})

	t.Run("screenshot set once", func(t *testing.T) {
		at := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)
		updated, err := repos.Analysis.UpdateScreenshot(ctx, a.ID, "https://cdn/1.png", at)
		require.NoError(t, err)
		assert.True(t, updated)

		updated, err = repos.Analysis.UpdateScreenshot(ctx, a.ID, "https://cdn/2.png", at.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, updated)

		got, err := repos.Analysis.GetAnalysisByItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn/1.png", got.ScreenshotURL)
		require.NotNil(t, got.ScreenshotAt)
		assert.True(t, at.Equal(*got.ScreenshotAt))
	})
}
