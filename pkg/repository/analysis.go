package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/postdigest/pkg/domain"
)

// AnalysisRepository handles analysis records and the joined post views
type AnalysisRepository struct {
	db *sqlx.DB
}

// analysisSQL represents an analysis for SQL operations
type analysisSQL struct {
	ID              int64      `db:"id"`
	ItemID          int64      `db:"item_id"`
	Relevant        bool       `db:"is_relevant"`
	RelevanceScore  float64    `db:"relevance_score"`
	Summary         string     `db:"summary"`
	Translation     string     `db:"translation"`
	Topics          topicsSQL  `db:"topics"`
	ImportanceScore float64    `db:"importance_score"`
	ScreenshotURL   string     `db:"screenshot_url"`
	ScreenshotAt    *time.Time `db:"screenshot_at"`
	AnalyzedAt      time.Time  `db:"analyzed_at"`
}

// postSQL is a flattened analysis + item + source row
type postSQL struct {
	analysisSQL
	ItemExternalID   string    `db:"item_external_id"`
	ItemSourceID     int64     `db:"item_source_id"`
	ItemText         string    `db:"item_text"`
	ItemURL          string    `db:"item_url"`
	Likes            int       `db:"likes"`
	Reshares         int       `db:"reshares"`
	Replies          int       `db:"replies"`
	Bookmarks        int       `db:"bookmarks"`
	EngagementScore  float64   `db:"engagement_score"`
	ItemEnriched     bool      `db:"item_enriched"`
	ItemCreatedAt    time.Time `db:"item_created_at"`
	ItemCollectedAt  time.Time `db:"item_collected_at"`
	SourceExternalID string    `db:"source_external_id"`
	SourceHandle     string    `db:"source_handle"`
	SourceName       string    `db:"source_name"`
}

// PostFilter selects analyses for listing
type PostFilter struct {
	RelevantOnly bool
	Limit        int
	Offset       int
}

// postColumns selects everything postSQL needs, nullable text columns coalesced
const postColumns = `
	a.id, a.item_id, a.is_relevant, a.relevance_score,
	COALESCE(a.summary, '') AS summary, COALESCE(a.translation, '') AS translation,
	a.topics, a.importance_score, COALESCE(a.screenshot_url, '') AS screenshot_url,
	a.screenshot_at, a.analyzed_at,
	i.external_id AS item_external_id, i.source_id AS item_source_id, i.text AS item_text,
	COALESCE(i.url, '') AS item_url, i.likes, i.reshares, i.replies, i.bookmarks, i.engagement_score,
	i.enriched AS item_enriched, i.created_at AS item_created_at, i.collected_at AS item_collected_at,
	s.external_id AS source_external_id, s.handle AS source_handle, COALESCE(s.display_name, '') AS source_name`

const postJoins = `
	FROM analyses a
	JOIN items i ON i.id = a.item_id
	JOIN sources s ON s.id = i.source_id`

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *sqlx.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// SaveAnalyses stores analyses and flips the enriched flag of their items in one transaction.
// An item already analyzed keeps its first analysis.
func (r *AnalysisRepository) SaveAnalyses(ctx context.Context, analyses []domain.Analysis) error {
	if len(analyses) == 0 {
		return nil
	}

	err := withRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		for _, a := range analyses {
			analyzedAt := a.AnalyzedAt
			if analyzedAt.IsZero() {
				analyzedAt = time.Now().UTC()
			}
			var summary string
			topics := topicsSQL{}
			if a.Relevant { // summary and topics are kept for relevant posts only
				summary, topics = a.Summary, topicsSQL(a.Topics)
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO analyses (item_id, is_relevant, relevance_score, summary, topics, importance_score, analyzed_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(item_id) DO NOTHING`,
				a.ItemID, a.Relevant, a.RelevanceScore, summary, topics, a.ImportanceScore, analyzedAt.UTC())
			if err != nil {
				return fmt.Errorf("insert analysis for item %d: %w", a.ItemID, err)
			}
			if _, err := tx.ExecContext(ctx, "UPDATE items SET enriched = 1 WHERE id = ?", a.ItemID); err != nil {
				return fmt.Errorf("mark item %d enriched: %w", a.ItemID, err)
			}
		}

		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("save analyses: %w", err)
	}
	return nil
}

// GetAnalysisByItem returns the analysis of an item
func (r *AnalysisRepository) GetAnalysisByItem(ctx context.Context, itemID int64) (*domain.Analysis, error) {
	var row analysisSQL
	query := `
		SELECT id, item_id, is_relevant, relevance_score, COALESCE(summary, '') AS summary,
		       COALESCE(translation, '') AS translation, topics, importance_score,
		       COALESCE(screenshot_url, '') AS screenshot_url, screenshot_at, analyzed_at
		FROM analyses WHERE item_id = ?`
	if err := r.db.GetContext(ctx, &row, query, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("analysis of item %d: %w", itemID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get analysis: %w", err)
	}
	res := row.toDomain()
	return &res, nil
}

// GetQualifyingPosts returns relevant posts created within [from, to), in analysis id order
func (r *AnalysisRepository) GetQualifyingPosts(ctx context.Context, from, to time.Time) ([]domain.Post, error) {
	query := "SELECT " + postColumns + postJoins + `
		WHERE a.is_relevant = 1 AND i.created_at >= ? AND i.created_at < ?
		ORDER BY a.id ASC`
	var rows []postSQL
	if err := r.db.SelectContext(ctx, &rows, query, from.UTC(), to.UTC()); err != nil {
		return nil, fmt.Errorf("get qualifying posts: %w", err)
	}
	return toPosts(rows), nil
}

// GetPosts returns analyzed posts by descending importance
func (r *AnalysisRepository) GetPosts(ctx context.Context, filter PostFilter) ([]domain.Post, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	query := "SELECT " + postColumns + postJoins
	if filter.RelevantOnly {
		query += " WHERE a.is_relevant = 1"
	}
	query += " ORDER BY a.importance_score DESC, a.id ASC LIMIT ? OFFSET ?"

	var rows []postSQL
	if err := r.db.SelectContext(ctx, &rows, query, filter.Limit, filter.Offset); err != nil {
		return nil, fmt.Errorf("get posts: %w", err)
	}
	return toPosts(rows), nil
}

// UpdateTranslation stores a translation unless one is already set.
// Returns false if the analysis already had a translation.
func (r *AnalysisRepository) UpdateTranslation(ctx context.Context, analysisID int64, translation string) (bool, error) {
	var updated bool
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, `
			UPDATE analyses SET translation = ?
			WHERE id = ? AND (translation IS NULL OR translation = '')`, translation, analysisID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		updated = n > 0
		return err
	})
	if err != nil {
		return false, fmt.Errorf("update translation: %w", err)
	}
	return updated, nil
}

// UpdateScreenshot stores a screenshot url and time unless one is already set.
// Returns false if the analysis already had a screenshot.
func (r *AnalysisRepository) UpdateScreenshot(ctx context.Context, analysisID int64, url string, at time.Time) (bool, error) {
	var updated bool
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, `
			UPDATE analyses SET screenshot_url = ?, screenshot_at = ?
			WHERE id = ? AND (screenshot_url IS NULL OR screenshot_url = '')`, url, at.UTC(), analysisID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		updated = n > 0
		return err
	})
	if err != nil {
		return false, fmt.Errorf("update screenshot: %w", err)
	}
	return updated, nil
}

func (a *analysisSQL) toDomain() domain.Analysis {
	topics := []string(a.Topics)
	if topics == nil {
		topics = []string{}
	}
	return domain.Analysis{
		ID:              a.ID,
		ItemID:          a.ItemID,
		Relevant:        a.Relevant,
		RelevanceScore:  a.RelevanceScore,
		Summary:         a.Summary,
		Translation:     a.Translation,
		Topics:          topics,
		ImportanceScore: a.ImportanceScore,
		ScreenshotURL:   a.ScreenshotURL,
		ScreenshotAt:    a.ScreenshotAt,
		AnalyzedAt:      a.AnalyzedAt,
	}
}

func (p *postSQL) toDomain() domain.Post {
	return domain.Post{
		Analysis: p.analysisSQL.toDomain(),
		Item: domain.Item{
			ID:              p.ItemID,
			ExternalID:      p.ItemExternalID,
			SourceID:        p.ItemSourceID,
			Text:            p.ItemText,
			URL:             p.ItemURL,
			Counts:          domain.Counts{Likes: p.Likes, Reshares: p.Reshares, Replies: p.Replies, Bookmarks: p.Bookmarks},
			EngagementScore: p.EngagementScore,
			Enriched:        p.ItemEnriched,
			CreatedAt:       p.ItemCreatedAt,
			CollectedAt:     p.ItemCollectedAt,
		},
		Source: domain.Source{
			ID:          p.ItemSourceID,
			ExternalID:  p.SourceExternalID,
			Handle:      p.SourceHandle,
			DisplayName: p.SourceName,
		},
	}
}

func toPosts(rows []postSQL) []domain.Post {
	res := make([]domain.Post, 0, len(rows))
	for i := range rows {
		res = append(res, rows[i].toDomain())
	}
	return res
}
