package server

import (
	"context"

	"github.com/umputun/postdigest/pkg/domain"
	"github.com/umputun/postdigest/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Database interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// ListDigests returns digests newest first with the total count
func (r *RepositoryAdapter) ListDigests(ctx context.Context, limit, offset int) ([]domain.Digest, int64, error) {
	return r.repos.Digest.ListDigests(ctx, limit, offset)
}

// GetDigestView returns a digest with its posts
func (r *RepositoryAdapter) GetDigestView(ctx context.Context, id int64) (*domain.DigestView, error) {
	return r.repos.Digest.GetDigestView(ctx, id)
}

// GetDigestViewBySlug resolves the slug and returns the digest with its posts
func (r *RepositoryAdapter) GetDigestViewBySlug(ctx context.Context, slug string) (*domain.DigestView, error) {
	d, err := r.repos.Digest.GetDigestBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return r.repos.Digest.GetDigestView(ctx, d.ID)
}

// GetPosts returns analyzed posts by importance
func (r *RepositoryAdapter) GetPosts(ctx context.Context, filter repository.PostFilter) ([]domain.Post, error) {
	return r.repos.Analysis.GetPosts(ctx, filter)
}

// GetStats returns stored data counters
func (r *RepositoryAdapter) GetStats(ctx context.Context) (*domain.Stats, error) {
	return r.repos.Digest.GetStats(ctx)
}

// GetSources returns sources, all or active only
func (r *RepositoryAdapter) GetSources(ctx context.Context, activeOnly bool) ([]domain.Source, error) {
	return r.repos.Source.GetSources(ctx, activeOnly)
}

// SetSourceActive enables or disables a source
func (r *RepositoryAdapter) SetSourceActive(ctx context.Context, id int64, active bool) error {
	return r.repos.Source.SetSourceActive(ctx, id, active)
}
