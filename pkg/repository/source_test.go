package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postdigest/pkg/domain"
)

func TestSourceRepository_CreateSource(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	src := &domain.Source{ExternalID: "42", Handle: "karpathy", DisplayName: "Andrej", Active: true}
	require.NoError(t, repos.Source.CreateSource(ctx, src))
	assert.NotZero(t, src.ID)
	assert.False(t, src.CreatedAt.IsZero())

	t.Run("duplicate external id returns stored source", func(t *testing.T) {
		dup := &domain.Source{ExternalID: "42", Handle: "renamed", Active: false}
		require.NoError(t, repos.Source.CreateSource(ctx, dup))
		assert.Equal(t, src.ID, dup.ID)
		assert.Equal(t, "karpathy", dup.Handle)
		assert.True(t, dup.Active)
	})

	t.Run("get by id and external id", func(t *testing.T) {
		got, err := repos.Source.GetSource(ctx, src.ID)
		require.NoError(t, err)
		assert.Equal(t, "Andrej", got.DisplayName)

		got, err = repos.Source.GetSourceByExternalID(ctx, "42")
		require.NoError(t, err)
		assert.Equal(t, src.ID, got.ID)

		_, err = repos.Source.GetSource(ctx, 999)
		require.ErrorIs(t, err, domain.ErrNotFound)
		_, err = repos.Source.GetSourceByExternalID(ctx, "nope")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSourceRepository_GetSources(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	a := createTestSource(t, repos, "bob")
	createTestSource(t, repos, "alice")
	require.NoError(t, repos.Source.SetSourceActive(ctx, a.ID, false))

	all, err := repos.Source.GetSources(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alice", all[0].Handle)
	assert.Equal(t, "bob", all[1].Handle)
	assert.False(t, all[1].Active)

	active, err := repos.Source.GetSources(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "alice", active[0].Handle)

	err = repos.Source.SetSourceActive(ctx, 999, true)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSourceRepository_UpdateSourceCursor(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	src := createTestSource(t, repos, "carol")
	assert.Empty(t, src.Cursor)

	require.NoError(t, repos.Source.UpdateSourceCursor(ctx, src.ID, "1790000000000000001"))
	got, err := repos.Source.GetSource(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, "1790000000000000001", got.Cursor)
}
