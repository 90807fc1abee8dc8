package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postdigest/pkg/analyzer"
	"github.com/umputun/postdigest/pkg/collector"
	"github.com/umputun/postdigest/pkg/digest"
	"github.com/umputun/postdigest/pkg/domain"
	"github.com/umputun/postdigest/pkg/repository"
	"github.com/umputun/postdigest/pkg/scheduler"
	"github.com/umputun/postdigest/server/mocks"
)

func testDigestView() *domain.DigestView {
	sent := time.Date(2025, 2, 2, 8, 0, 0, 0, time.UTC)
	return &domain.DigestView{
		Digest: domain.Digest{ID: 3, Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), Slug: "2025-02-01-ai-news",
			TotalCount: 2, HighlightCount: 1, CompactCount: 1, Topics: []string{"llm"}, Narrative: "**Busy** day",
			Description: "Daily digest for 2025-02-01", SentAt: &sent},
		Highlights: []domain.Post{{
			Analysis: domain.Analysis{ID: 10, Relevant: true, RelevanceScore: 9, Summary: "launch", ImportanceScore: 8},
			Item:     domain.Item{ID: 20, ExternalID: "1001", Text: "we launched", URL: "https://x.com/i/status/1001"},
			Source:   domain.Source{Handle: "lab"},
		}},
		Compact: []domain.Post{{
			Analysis: domain.Analysis{ID: 11, Relevant: true, ImportanceScore: 2},
			Item:     domain.Item{ID: 21, ExternalID: "1002", Text: "minor"},
			Source:   domain.Source{Handle: "dev"},
		}},
	}
}

func serve(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestServer_ListDigests(t *testing.T) {
	db := &mocks.DatabaseMock{ListDigestsFunc: func(ctx context.Context, limit, offset int) ([]domain.Digest, int64, error) {
		return []domain.Digest{testDigestView().Digest}, 41, nil
	}}
	srv := testServer(t, db, nil, nil)

	w := serve(srv, http.MethodGet, "/api/v1/digests?page=3&page_size=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, db.ListDigestsCalls(), 1)
	assert.Equal(t, 10, db.ListDigestsCalls()[0].Limit)
	assert.Equal(t, 20, db.ListDigestsCalls()[0].Offset)

	var resp struct {
		Digests    []digestJSON `json:"digests"`
		Total      int64        `json:"total"`
		Page       int          `json:"page"`
		TotalPages int64        `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(41), resp.Total)
	assert.Equal(t, int64(5), resp.TotalPages)
	assert.Equal(t, 3, resp.Page)
	require.Len(t, resp.Digests, 1)
	assert.Equal(t, "2025-02-01", resp.Digests[0].Date)
	assert.Equal(t, "https://digest.example.com/digest/2025-02-01-ai-news", resp.Digests[0].URL)

	t.Run("defaults", func(t *testing.T) {
		w := serve(srv, http.MethodGet, "/api/v1/digests", "")
		require.Equal(t, http.StatusOK, w.Code)
		last := db.ListDigestsCalls()[len(db.ListDigestsCalls())-1]
		assert.Equal(t, 20, last.Limit)
		assert.Equal(t, 0, last.Offset)
	})

	t.Run("page size too big", func(t *testing.T) {
		w := serve(srv, http.MethodGet, "/api/v1/digests?page_size=1000", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestServer_GetDigest(t *testing.T) {
	db := &mocks.DatabaseMock{
		GetDigestViewFunc: func(ctx context.Context, id int64) (*domain.DigestView, error) {
			if id != 3 {
				return nil, fmt.Errorf("digest %d: %w", id, domain.ErrNotFound)
			}
			return testDigestView(), nil
		},
		GetDigestViewBySlugFunc: func(ctx context.Context, slug string) (*domain.DigestView, error) {
			if slug != "2025-02-01-ai-news" {
				return nil, fmt.Errorf("digest %s: %w", slug, domain.ErrNotFound)
			}
			return testDigestView(), nil
		},
	}
	srv := testServer(t, db, nil, nil)

	tests := []struct {
		name string
		url  string
		code int
	}{
		{"by id", "/api/v1/digests/3", http.StatusOK},
		{"by slug", "/api/v1/digests/slug/2025-02-01-ai-news", http.StatusOK},
		{"missing id", "/api/v1/digests/4", http.StatusNotFound},
		{"missing slug", "/api/v1/digests/slug/nope", http.StatusNotFound},
		{"bad id", "/api/v1/digests/abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(srv, http.MethodGet, tt.url, "")
			require.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.code != http.StatusOK {
				return
			}
			var resp digestViewJSON
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "2025-02-01-ai-news", resp.Digest.Slug)
			require.NotNil(t, resp.Digest.SentAt)
			require.Len(t, resp.Highlights, 1)
			assert.Equal(t, "launch", resp.Highlights[0].Summary)
			assert.Equal(t, "lab", resp.Highlights[0].Handle)
			require.Len(t, resp.Compact, 1)
			assert.Equal(t, int64(11), resp.Compact[0].AnalysisID)
		})
	}
}

func TestServer_BuildDigest(t *testing.T) {
	yesterday := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	created := testDigestView().Digest
	sched := &mocks.SchedulerMock{
		YesterdayFunc: func() time.Time { return yesterday },
		BuildDigestNowFunc: func(ctx context.Context, date time.Time) (digest.BuildResult, error) {
			switch date.Format(domain.DateLayout) {
			case "2025-02-01":
				return digest.BuildResult{Status: digest.BuildCreated, Digest: &created,
					Enrichment: &digest.EnrichResult{Translated: 2}}, nil
			case "2025-01-31":
				return digest.BuildResult{Status: digest.BuildExisting, Digest: &created}, nil
			case "2025-01-30":
				return digest.BuildResult{Status: digest.BuildEmpty}, nil
			default:
				return digest.BuildResult{}, errors.New("db locked")
			}
		},
	}
	srv := testServer(t, &mocks.DatabaseMock{}, sched, nil)

	t.Run("yesterday by default", func(t *testing.T) {
		w := serve(srv, http.MethodPost, "/api/v1/digests/build", "")
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"created"`)
		assert.Contains(t, w.Body.String(), `"translated":2`)
		assert.Contains(t, w.Body.String(), `"slug":"2025-02-01-ai-news"`)
	})

	t.Run("existing", func(t *testing.T) {
		w := serve(srv, http.MethodPost, "/api/v1/digests/build?date=2025-01-31", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"existing"`)
		assert.NotContains(t, w.Body.String(), "enrichment")
	})

	t.Run("empty day", func(t *testing.T) {
		w := serve(srv, http.MethodPost, "/api/v1/digests/build?date=2025-01-30", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"empty"`)
		assert.NotContains(t, w.Body.String(), `"digest"`)
	})

	t.Run("bad date", func(t *testing.T) {
		w := serve(srv, http.MethodPost, "/api/v1/digests/build?date=01/02/2025", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("build error", func(t *testing.T) {
		w := serve(srv, http.MethodPost, "/api/v1/digests/build?date=2024-01-01", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "db locked")
	})
}

func TestServer_EnrichDigest(t *testing.T) {
	sched := &mocks.SchedulerMock{EnrichDigestNowFunc: func(ctx context.Context, id int64) (digest.EnrichResult, error) {
		if id == 404 {
			return digest.EnrichResult{}, fmt.Errorf("load digest 404: %w", domain.ErrNotFound)
		}
		return digest.EnrichResult{TranslationsKept: 3, ScreenshotDisabled: true}, nil
	}}
	srv := testServer(t, &mocks.DatabaseMock{}, sched, nil)

	w := serve(srv, http.MethodPost, "/api/v1/digests/3/enrich", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"translations_kept":3`)
	assert.Contains(t, w.Body.String(), `"screenshot_disabled":true`)

	assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodPost, "/api/v1/digests/404/enrich", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(srv, http.MethodPost, "/api/v1/digests/x/enrich", "").Code)
}

func TestServer_Collect(t *testing.T) {
	sched := &mocks.SchedulerMock{CollectNowFunc: func(ctx context.Context) (scheduler.CollectResult, error) {
		return scheduler.CollectResult{
			Collected: collector.Stats{Sources: 3, Stored: 7},
			Analyzed: analyzer.Report{Analyzed: 7, Relevant: 2, Chunks: []analyzer.ChunkResult{
				{Status: analyzer.ChunkCommitted}, {Status: analyzer.ChunkSkipped}}},
		}, nil
	}}
	srv := testServer(t, &mocks.DatabaseMock{}, sched, nil)

	w := serve(srv, http.MethodPost, "/api/v1/collect", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stored":7`)
	assert.Contains(t, w.Body.String(), `"relevant":2`)
	assert.Contains(t, w.Body.String(), `"skipped_chunks":1`)
	assert.Contains(t, w.Body.String(), `"committed_chunks":1`)
}

func TestServer_Posts(t *testing.T) {
	db := &mocks.DatabaseMock{GetPostsFunc: func(ctx context.Context, filter repository.PostFilter) ([]domain.Post, error) {
		return testDigestView().Highlights, nil
	}}
	srv := testServer(t, db, nil, nil)

	w := serve(srv, http.MethodGet, "/api/v1/posts?limit=5&offset=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, repository.PostFilter{RelevantOnly: true, Limit: 5, Offset: 10}, db.GetPostsCalls()[0].Filter)
	assert.Contains(t, w.Body.String(), `"importance_score":8`)

	w = serve(srv, http.MethodGet, "/api/v1/posts?relevant=false", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, repository.PostFilter{RelevantOnly: false, Limit: 50}, db.GetPostsCalls()[1].Filter)

	assert.Equal(t, http.StatusBadRequest, serve(srv, http.MethodGet, "/api/v1/posts?limit=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(srv, http.MethodGet, "/api/v1/posts?offset=-1", "").Code)
}

func TestServer_Stats(t *testing.T) {
	db := &mocks.DatabaseMock{GetStatsFunc: func(ctx context.Context) (*domain.Stats, error) {
		return &domain.Stats{Digests: 2, Items: 50, Analyses: 40, RelevantAnalyses: 12, PendingItems: 10,
			LatestDigestDate: "2025-02-01"}, nil
	}}
	srv := testServer(t, db, nil, nil)

	w := serve(srv, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pending_items":10`)
	assert.Contains(t, w.Body.String(), `"latest_digest_date":"2025-02-01"`)
}

func TestServer_Sources(t *testing.T) {
	db := &mocks.DatabaseMock{
		GetSourcesFunc: func(ctx context.Context, activeOnly bool) ([]domain.Source, error) {
			return []domain.Source{{ID: 1, ExternalID: "42", Handle: "lab", Active: true}}, nil
		},
		SetSourceActiveFunc: func(ctx context.Context, id int64, active bool) error {
			if id == 404 {
				return fmt.Errorf("source 404: %w", domain.ErrNotFound)
			}
			return nil
		},
	}
	sources := &mocks.SourceManagerMock{AddSourceFunc: func(ctx context.Context, handle, feedURL string) (*domain.Source, error) {
		if handle == "ghost" {
			return nil, fmt.Errorf("user ghost: %w", collector.ErrSourceNotFound)
		}
		return &domain.Source{ID: 2, ExternalID: "77", Handle: handle, FeedURL: feedURL, Active: true}, nil
	}}
	srv := testServer(t, db, nil, sources)

	t.Run("list", func(t *testing.T) {
		w := serve(srv, http.MethodGet, "/api/v1/sources?active=true", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, db.GetSourcesCalls()[0].ActiveOnly)
		assert.Contains(t, w.Body.String(), `"handle":"lab"`)
	})

	t.Run("add handle", func(t *testing.T) {
		w := serve(srv, http.MethodPost, "/api/v1/sources", `{"handle":" @karpathy "}`)
		require.Equal(t, http.StatusCreated, w.Code)
		call := sources.AddSourceCalls()[len(sources.AddSourceCalls())-1]
		assert.Equal(t, "karpathy", call.Handle)
		assert.Empty(t, call.FeedURL)
		assert.Contains(t, w.Body.String(), `"external_id":"77"`)
	})

	t.Run("add feed", func(t *testing.T) {
		w := serve(srv, http.MethodPost, "/api/v1/sources", `{"feed_url":"https://lab.example.com/feed.xml"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"feed_url":"https://lab.example.com/feed.xml"`)
	})

	t.Run("add errors", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(srv, http.MethodPost, "/api/v1/sources", `{}`).Code)
		assert.Equal(t, http.StatusBadRequest, serve(srv, http.MethodPost, "/api/v1/sources", `not json`).Code)
		assert.Equal(t, http.StatusBadRequest, serve(srv, http.MethodPost, "/api/v1/sources", `{"feed_url":"ftp://x"}`).Code)
		assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodPost, "/api/v1/sources", `{"handle":"ghost"}`).Code)
	})

	t.Run("set active", func(t *testing.T) {
		w := serve(srv, http.MethodPut, "/api/v1/sources/1/active", `{"active":false}`)
		require.Equal(t, http.StatusOK, w.Code)
		call := db.SetSourceActiveCalls()[0]
		assert.Equal(t, int64(1), call.ID)
		assert.False(t, call.Active)

		assert.Equal(t, http.StatusBadRequest, serve(srv, http.MethodPut, "/api/v1/sources/1/active", `{}`).Code)
		assert.Equal(t, http.StatusBadRequest, serve(srv, http.MethodPut, "/api/v1/sources/x/active", `{"active":true}`).Code)
		assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodPut, "/api/v1/sources/404/active", `{"active":true}`).Code)
	})
}
