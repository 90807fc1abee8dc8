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

// SourceRepository handles monitored account operations
type SourceRepository struct {
	db *sqlx.DB
}

// sourceSQL represents a source for SQL operations
type sourceSQL struct {
	ID          int64     `db:"id"`
	ExternalID  string    `db:"external_id"`
	Handle      string    `db:"handle"`
	DisplayName string    `db:"display_name"`
	FeedURL     string    `db:"feed_url"`
	Active      bool      `db:"active"`
	Cursor      string    `db:"cursor"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// CreateSource inserts a source. A source with the same external id is not
// duplicated, the stored one is loaded into src instead.
func (r *SourceRepository) CreateSource(ctx context.Context, src *domain.Source) error {
	now := time.Now().UTC()
	row := sourceSQL{
		ExternalID:  src.ExternalID,
		Handle:      src.Handle,
		DisplayName: src.DisplayName,
		FeedURL:     src.FeedURL,
		Active:      src.Active,
		Cursor:      src.Cursor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := withRetry(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx, `
			INSERT INTO sources (external_id, handle, display_name, feed_url, active, cursor, created_at, updated_at)
			VALUES (:external_id, :handle, :display_name, :feed_url, :active, :cursor, :created_at, :updated_at)
			ON CONFLICT(external_id) DO NOTHING`, row)
		return err
	})
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}

	stored, err := r.GetSourceByExternalID(ctx, src.ExternalID)
	if err != nil {
		return fmt.Errorf("load created source: %w", err)
	}
	*src = *stored
	return nil
}

// GetSource retrieves a source by id
func (r *SourceRepository) GetSource(ctx context.Context, id int64) (*domain.Source, error) {
	var row sourceSQL
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM sources WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("source %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get source: %w", err)
	}
	return row.toDomain(), nil
}

// GetSourceByExternalID retrieves a source by its external id
func (r *SourceRepository) GetSourceByExternalID(ctx context.Context, externalID string) (*domain.Source, error) {
	var row sourceSQL
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM sources WHERE external_id = ?", externalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("source %q: %w", externalID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get source by external id: %w", err)
	}
	return row.toDomain(), nil
}

// GetSources returns sources ordered by handle, only active ones if activeOnly is set
func (r *SourceRepository) GetSources(ctx context.Context, activeOnly bool) ([]domain.Source, error) {
	query := "SELECT * FROM sources"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY handle, id"

	var rows []sourceSQL
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}

	res := make([]domain.Source, 0, len(rows))
	for _, row := range rows {
		res = append(res, *row.toDomain())
	}
	return res, nil
}

// UpdateSourceCursor stores the external id of the last collected item
func (r *SourceRepository) UpdateSourceCursor(ctx context.Context, id int64, cursor string) error {
	err := withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "UPDATE sources SET cursor = ?, updated_at = ? WHERE id = ?",
			cursor, time.Now().UTC(), id)
		return err
	})
	if err != nil {
		return fmt.Errorf("update source cursor: %w", err)
	}
	return nil
}

// SetSourceActive enables or disables collection for a source
func (r *SourceRepository) SetSourceActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE sources SET active = ?, updated_at = ? WHERE id = ?",
		active, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("set source active: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("source %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *sourceSQL) toDomain() *domain.Source {
	return &domain.Source{
		ID:          s.ID,
		ExternalID:  s.ExternalID,
		Handle:      s.Handle,
		DisplayName: s.DisplayName,
		FeedURL:     s.FeedURL,
		Active:      s.Active,
		Cursor:      s.Cursor,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
