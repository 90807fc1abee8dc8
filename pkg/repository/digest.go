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

// DigestRepository handles daily digests and their entries
type DigestRepository struct {
	db *sqlx.DB
}

// digestSQL represents a digest for SQL operations
type digestSQL struct {
	ID             int64      `db:"id"`
	Date           string     `db:"date"`
	Slug           string     `db:"slug"`
	TotalCount     int        `db:"total_count"`
	HighlightCount int        `db:"highlight_count"`
	CompactCount   int        `db:"compact_count"`
	Topics         topicsSQL  `db:"topics"`
	Narrative      string     `db:"narrative"`
	Description    string     `db:"description"`
	CreatedAt      time.Time  `db:"created_at"`
	SentAt         *time.Time `db:"sent_at"`
	Recipient      string     `db:"recipient"`
}

// entryPostSQL is a post row with its digest placement
type entryPostSQL struct {
	postSQL
	Tier string `db:"tier"`
	Rank int    `db:"rank"`
}

const digestColumns = `id, date, slug, total_count, highlight_count, compact_count, topics,
	COALESCE(narrative, '') AS narrative, COALESCE(description, '') AS description,
	created_at, sent_at, COALESCE(recipient, '') AS recipient`

// NewDigestRepository creates a new digest repository
func NewDigestRepository(db *sqlx.DB) *DigestRepository {
	return &DigestRepository{db: db}
}

// CreateDigest persists a digest and all its entries in one transaction.
// A digest with the same date or slug fails with domain.ErrDuplicateDigest.
func (r *DigestRepository) CreateDigest(ctx context.Context, d *domain.Digest, entries []domain.DigestEntry) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	res, err := tx.ExecContext(ctx, `
		INSERT INTO digests (date, slug, total_count, highlight_count, compact_count, topics,
			narrative, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.DateString(), d.Slug, d.TotalCount, d.HighlightCount, d.CompactCount, topicsSQL(d.Topics),
		d.Narrative, d.Description, d.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create digest %s: %w", d.Slug, domain.ErrDuplicateDigest)
		}
		return fmt.Errorf("create digest: %w", err)
	}
	digestID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get digest id: %w", err)
	}

	for i := range entries {
		entries[i].DigestID = digestID
		res, err := tx.ExecContext(ctx,
			"INSERT INTO digest_entries (digest_id, analysis_id, tier, rank) VALUES (?, ?, ?, ?)",
			digestID, entries[i].AnalysisID, string(entries[i].Tier), entries[i].Rank)
		if err != nil {
			return fmt.Errorf("create digest entry %s/%d: %w", entries[i].Tier, entries[i].Rank, err)
		}
		if entries[i].ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("get digest entry id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit digest: %w", err)
	}
	d.ID = digestID
	return nil
}

// GetDigest retrieves a digest by id
func (r *DigestRepository) GetDigest(ctx context.Context, id int64) (*domain.Digest, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetDigestByDate retrieves the digest of a calendar date, formatted as YYYY-MM-DD
func (r *DigestRepository) GetDigestByDate(ctx context.Context, date string) (*domain.Digest, error) {
	return r.getOne(ctx, "date = ?", date)
}

// GetDigestBySlug retrieves a digest by slug
func (r *DigestRepository) GetDigestBySlug(ctx context.Context, slug string) (*domain.Digest, error) {
	return r.getOne(ctx, "slug = ?", slug)
}

func (r *DigestRepository) getOne(ctx context.Context, where string, arg any) (*domain.Digest, error) {
	var row digestSQL
	query := "SELECT " + digestColumns + " FROM digests WHERE " + where
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("digest %v: %w", arg, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get digest: %w", err)
	}
	return row.toDomain()
}

// ListDigests returns digests newest date first, with the total count
func (r *DigestRepository) ListDigests(ctx context.Context, limit, offset int) ([]domain.Digest, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM digests"); err != nil {
		return nil, 0, fmt.Errorf("count digests: %w", err)
	}

	var rows []digestSQL
	query := "SELECT " + digestColumns + " FROM digests ORDER BY date DESC LIMIT ? OFFSET ?"
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list digests: %w", err)
	}

	res := make([]domain.Digest, 0, len(rows))
	for _, row := range rows {
		d, err := row.toDomain()
		if err != nil {
			return nil, 0, err
		}
		res = append(res, *d)
	}
	return res, total, nil
}

// GetDigestView returns a digest with its posts, each tier ordered by rank
func (r *DigestRepository) GetDigestView(ctx context.Context, id int64) (*domain.DigestView, error) {
	d, err := r.GetDigest(ctx, id)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + postColumns + ", de.tier, de.rank" + postJoins + `
		JOIN digest_entries de ON de.analysis_id = a.id
		WHERE de.digest_id = ?
		ORDER BY CASE de.tier WHEN 'highlight' THEN 0 ELSE 1 END, de.rank ASC`
	var rows []entryPostSQL
	if err := r.db.SelectContext(ctx, &rows, query, id); err != nil {
		return nil, fmt.Errorf("get digest entries: %w", err)
	}

	view := &domain.DigestView{Digest: *d, Highlights: []domain.Post{}, Compact: []domain.Post{}}
	for i := range rows {
		post := rows[i].postSQL.toDomain()
		switch domain.Tier(rows[i].Tier) {
		case domain.TierHighlight:
			view.Highlights = append(view.Highlights, post)
		case domain.TierCompact:
			view.Compact = append(view.Compact, post)
		}
	}
	return view, nil
}

// GetDigestEntries returns the raw placements of a digest, highlights first
func (r *DigestRepository) GetDigestEntries(ctx context.Context, digestID int64) ([]domain.DigestEntry, error) {
	var rows []struct {
		ID         int64  `db:"id"`
		DigestID   int64  `db:"digest_id"`
		AnalysisID int64  `db:"analysis_id"`
		Tier       string `db:"tier"`
		Rank       int    `db:"rank"`
	}
	query := `SELECT id, digest_id, analysis_id, tier, rank FROM digest_entries WHERE digest_id = ?
		ORDER BY CASE tier WHEN 'highlight' THEN 0 ELSE 1 END, rank ASC`
	if err := r.db.SelectContext(ctx, &rows, query, digestID); err != nil {
		return nil, fmt.Errorf("get digest entries: %w", err)
	}
	res := make([]domain.DigestEntry, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.DigestEntry{ID: row.ID, DigestID: row.DigestID, AnalysisID: row.AnalysisID,
			Tier: domain.Tier(row.Tier), Rank: row.Rank})
	}
	return res, nil
}

// MarkSent records delivery time and recipient
func (r *DigestRepository) MarkSent(ctx context.Context, id int64, sentAt time.Time, recipient string) error {
	err := withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "UPDATE digests SET sent_at = ?, recipient = ? WHERE id = ?",
			sentAt.UTC(), recipient, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("mark digest sent: %w", err)
	}
	return nil
}

// GetStats returns counters over all stored data
func (r *DigestRepository) GetStats(ctx context.Context) (*domain.Stats, error) {
	var row struct {
		Digests          int64  `db:"digests"`
		Items            int64  `db:"items"`
		Analyses         int64  `db:"analyses"`
		RelevantAnalyses int64  `db:"relevant"`
		PendingItems     int64  `db:"pending"`
		LatestDigestDate string `db:"latest"`
	}
	query := `
		SELECT
			(SELECT COUNT(*) FROM digests) AS digests,
			(SELECT COUNT(*) FROM items) AS items,
			(SELECT COUNT(*) FROM analyses) AS analyses,
			(SELECT COUNT(*) FROM analyses WHERE is_relevant = 1) AS relevant,
			(SELECT COUNT(*) FROM items WHERE enriched = 0) AS pending,
			COALESCE((SELECT MAX(date) FROM digests), '') AS latest`
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return &domain.Stats{
		Digests:          row.Digests,
		Items:            row.Items,
		Analyses:         row.Analyses,
		RelevantAnalyses: row.RelevantAnalyses,
		PendingItems:     row.PendingItems,
		LatestDigestDate: row.LatestDigestDate,
	}, nil
}

func (d *digestSQL) toDomain() (*domain.Digest, error) {
	date, err := time.Parse(domain.DateLayout, d.Date)
	if err != nil {
		return nil, fmt.Errorf("parse digest date %q: %w", d.Date, err)
	}
	topics := []string(d.Topics)
	if topics == nil {
		topics = []string{}
	}
	return &domain.Digest{
		ID:             d.ID,
		Date:           date,
		Slug:           d.Slug,
		TotalCount:     d.TotalCount,
		HighlightCount: d.HighlightCount,
		CompactCount:   d.CompactCount,
		Topics:         topics,
		Narrative:      d.Narrative,
		Description:    d.Description,
		CreatedAt:      d.CreatedAt,
		SentAt:         d.SentAt,
		Recipient:      d.Recipient,
	}, nil
}
