package repository

import (
	"context"
	"testing"
	"time"

	"github.com/quillcms/go-services/internal/versioning"
	"github.com/stretchr/testify/require"
)

func TestMemorySnapshotRepoInsertGet(t *testing.T) {
	r := NewMemorySnapshotRepo()
	ctx := context.Background()

	id, err := r.Insert(ctx, &versioning.Snapshot{
		ContentType: versioning.ContentTypePost,
		ContentID:   "p1",
		Slug:        "hello",
		Title:       "Hello",
		Content:     "body",
		Source:      versioning.SourceDashboard,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Hello", got.Title)
	require.False(t, got.CreatedAt.IsZero())

	_, err = r.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySnapshotRepoListOrder(t *testing.T) {
	r := NewMemorySnapshotRepo()
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	// insert out of chronological order
	for _, offset := range []time.Duration{2 * time.Minute, 5 * time.Minute, 1 * time.Minute, 4 * time.Minute} {
		_, err := r.Insert(ctx, &versioning.Snapshot{
			ContentType: versioning.ContentTypePost,
			ContentID:   "p1",
			CreatedAt:   base.Add(offset),
			Source:      versioning.SourceDashboard,
		})
		require.NoError(t, err)
	}
	// a record for another content key must not appear
	_, err := r.Insert(ctx, &versioning.Snapshot{ContentType: versioning.ContentTypePage, ContentID: "p1"})
	require.NoError(t, err)

	list, err := r.ListByContent(ctx, versioning.ContentTypePost, "p1")
	require.NoError(t, err)
	require.Len(t, list, 4)
	for i := 1; i < len(list); i++ {
		require.False(t, list[i-1].CreatedAt.Before(list[i].CreatedAt),
			"history must be newest first: %v before %v", list[i-1].CreatedAt, list[i].CreatedAt)
	}

	empty, err := r.ListByContent(ctx, versioning.ContentTypePost, "nobody")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestMemorySnapshotRepoDeleteOlderThan(t *testing.T) {
	r := NewMemorySnapshotRepo()
	ctx := context.Background()
	cutoff := time.Now().UTC()

	oldID, err := r.Insert(ctx, &versioning.Snapshot{ContentType: versioning.ContentTypePost, ContentID: "p1", CreatedAt: cutoff.Add(-time.Hour)})
	require.NoError(t, err)
	atID, err := r.Insert(ctx, &versioning.Snapshot{ContentType: versioning.ContentTypePost, ContentID: "p1", CreatedAt: cutoff})
	require.NoError(t, err)
	newID, err := r.Insert(ctx, &versioning.Snapshot{ContentType: versioning.ContentTypePost, ContentID: "p1", CreatedAt: cutoff.Add(time.Hour)})
	require.NoError(t, err)

	n, err := r.DeleteOlderThan(ctx, cutoff, 1000)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = r.Get(ctx, oldID)
	require.ErrorIs(t, err, ErrNotFound)
	// records at or after the cutoff stay
	_, err = r.Get(ctx, atID)
	require.NoError(t, err)
	_, err = r.Get(ctx, newID)
	require.NoError(t, err)
}

func TestMemorySnapshotRepoDeleteBatchBound(t *testing.T) {
	r := NewMemorySnapshotRepo()
	ctx := context.Background()
	cutoff := time.Now().UTC()

	for i := 0; i < 7; i++ {
		_, err := r.Insert(ctx, &versioning.Snapshot{
			ContentType: versioning.ContentTypePost,
			ContentID:   "p1",
			CreatedAt:   cutoff.Add(-time.Duration(i+1) * time.Minute),
		})
		require.NoError(t, err)
	}

	// bounded batch: repeated calls drain the backlog
	n, err := r.DeleteOlderThan(ctx, cutoff, 3)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	n, err = r.DeleteOlderThan(ctx, cutoff, 3)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	n, err = r.DeleteOlderThan(ctx, cutoff, 3)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	n, err = r.DeleteOlderThan(ctx, cutoff, 3)
	require.NoError(t, err)
	require.Equal(t, int64(0), n)
}

func TestMemorySnapshotRepoCountAndBounds(t *testing.T) {
	r := NewMemorySnapshotRepo()
	ctx := context.Background()

	count, err := r.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
	oldest, newest, err := r.CreatedAtBounds(ctx)
	require.NoError(t, err)
	require.Nil(t, oldest)
	require.Nil(t, newest)

	t0 := time.Now().UTC().Add(-2 * time.Hour)
	t1 := time.Now().UTC().Add(-1 * time.Hour)
	_, err = r.Insert(ctx, &versioning.Snapshot{ContentType: versioning.ContentTypePost, ContentID: "a", CreatedAt: t1})
	require.NoError(t, err)
	_, err = r.Insert(ctx, &versioning.Snapshot{ContentType: versioning.ContentTypePage, ContentID: "b", CreatedAt: t0})
	require.NoError(t, err)

	count, err = r.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
	oldest, newest, err = r.CreatedAtBounds(ctx)
	require.NoError(t, err)
	require.True(t, oldest.Equal(t0))
	require.True(t, newest.Equal(t1))
}

func TestMemorySettingsRepoUpsert(t *testing.T) {
	r := NewMemorySettingsRepo()
	ctx := context.Background()

	v, err := r.GetBool(ctx, "enabled")
	require.NoError(t, err)
	require.False(t, v, "absent key reads as false")

	require.NoError(t, r.SetBool(ctx, "enabled", true))
	v, err = r.GetBool(ctx, "enabled")
	require.NoError(t, err)
	require.True(t, v)

	// upsert: second set overwrites, no duplicates
	require.NoError(t, r.SetBool(ctx, "enabled", false))
	v, err = r.GetBool(ctx, "enabled")
	require.NoError(t, err)
	require.False(t, v)
}
