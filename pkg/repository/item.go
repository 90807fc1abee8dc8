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

// ItemRepository handles collected post operations
type ItemRepository struct {
	db *sqlx.DB
}

// itemSQL represents an item for SQL operations
type itemSQL struct {
	ID              int64     `db:"id"`
	ExternalID      string    `db:"external_id"`
	SourceID        int64     `db:"source_id"`
	Text            string    `db:"text"`
	URL             string    `db:"url"`
	Likes           int       `db:"likes"`
	Reshares        int       `db:"reshares"`
	Replies         int       `db:"replies"`
	Bookmarks       int       `db:"bookmarks"`
	EngagementScore float64   `db:"engagement_score"`
	Enriched        bool      `db:"enriched"`
	CreatedAt       time.Time `db:"created_at"`
	CollectedAt     time.Time `db:"collected_at"`
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// CreateItem inserts a new item. Engagement score is stored as given and never updated later.
func (r *ItemRepository) CreateItem(ctx context.Context, item *domain.Item) error {
	if item.CollectedAt.IsZero() {
		item.CollectedAt = time.Now().UTC()
	}
	row := itemSQL{
		ExternalID:      item.ExternalID,
		SourceID:        item.SourceID,
		Text:            item.Text,
		URL:             item.URL,
		Likes:           item.Counts.Likes,
		Reshares:        item.Counts.Reshares,
		Replies:         item.Counts.Replies,
		Bookmarks:       item.Counts.Bookmarks,
		EngagementScore: item.EngagementScore,
		Enriched:        item.Enriched,
		CreatedAt:       item.CreatedAt.UTC(),
		CollectedAt:     item.CollectedAt.UTC(),
	}

	query := `
		INSERT INTO items (
			external_id, source_id, text, url, likes, reshares, replies, bookmarks,
			engagement_score, enriched, created_at, collected_at
		) VALUES (
			:external_id, :source_id, :text, :url, :likes, :reshares, :replies, :bookmarks,
			:engagement_score, :enriched, :created_at, :collected_at
		)`

	var id int64
	err := withRetry(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}

	item.ID = id
	return nil
}

// GetItem retrieves an item by id
func (r *ItemRepository) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	var row itemSQL
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM items WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return row.toDomain(), nil
}

// ItemExists checks if an item with the external id was already collected
func (r *ItemRepository) ItemExists(ctx context.Context, externalID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM items WHERE external_id = ?)", externalID)
	if err != nil {
		return false, fmt.Errorf("check item exists: %w", err)
	}
	return exists, nil
}

// GetPendingItems returns items without analysis, oldest first
func (r *ItemRepository) GetPendingItems(ctx context.Context, limit int) ([]domain.Item, error) {
	query := `
		SELECT * FROM items
		WHERE enriched = 0
		ORDER BY created_at ASC, id ASC
		LIMIT ?`
	var rows []itemSQL
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("get pending items: %w", err)
	}

	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, *row.toDomain())
	}
	return items, nil
}

func (i *itemSQL) toDomain() *domain.Item {
	return &domain.Item{
		ID:              i.ID,
		ExternalID:      i.ExternalID,
		SourceID:        i.SourceID,
		Text:            i.Text,
		URL:             i.URL,
		Counts:          domain.Counts{Likes: i.Likes, Reshares: i.Reshares, Replies: i.Replies, Bookmarks: i.Bookmarks},
		EngagementScore: i.EngagementScore,
		Enriched:        i.Enriched,
		CreatedAt:       i.CreatedAt,
		CollectedAt:     i.CollectedAt,
	}
}
