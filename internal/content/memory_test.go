package content

import (
	"context"
	"testing"
	"time"

	"github.com/quillcms/go-services/internal/versioning"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryGetPatch(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	// absent item is (nil, nil), not an error
	it, err := r.Get(ctx, versioning.ContentTypePost, "p1")
	require.NoError(t, err)
	require.Nil(t, it)

	r.Put(versioning.ContentTypePost, "p1", Item{Title: "T", Content: "C", Description: "D"})
	it, err = r.Get(ctx, versioning.ContentTypePost, "p1")
	require.NoError(t, err)
	require.Equal(t, "T", it.Title)
	require.Equal(t, "D", it.Description)

	now := time.Now().UTC()
	err = r.Patch(ctx, versioning.ContentTypePost, "p1", Patch{Title: "T2", Content: "C2", Description: "D2", LastSyncedAt: now})
	require.NoError(t, err)
	it, err = r.Get(ctx, versioning.ContentTypePost, "p1")
	require.NoError(t, err)
	require.Equal(t, "T2", it.Title)
	require.Equal(t, "D2", it.Description)
	stamp, ok := r.LastSyncedAt(versioning.ContentTypePost, "p1")
	require.True(t, ok)
	require.True(t, stamp.Equal(now))

	r.Delete(versioning.ContentTypePost, "p1")
	err = r.Patch(ctx, versioning.ContentTypePost, "p1", Patch{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepositoryPagesHaveNoDescription(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	r.Put(versioning.ContentTypePage, "pg1", Item{Title: "P", Content: "C", Description: "ignored"})
	it, err := r.Get(ctx, versioning.ContentTypePage, "pg1")
	require.NoError(t, err)
	require.Empty(t, it.Description)

	err = r.Patch(ctx, versioning.ContentTypePage, "pg1", Patch{Title: "P2", Content: "C2", Description: "ignored"})
	require.NoError(t, err)
	it, err = r.Get(ctx, versioning.ContentTypePage, "pg1")
	require.NoError(t, err)
	require.Equal(t, "P2", it.Title)
	require.Empty(t, it.Description)
}
