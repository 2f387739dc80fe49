package repository

import (
	"context"
	"errors"
	"time"

	"github.com/quillcms/go-services/internal/versioning"
)

var (
	ErrNotFound = errors.New("version not found")
)

// SnapshotRepository provides persistence for content version snapshots.
type SnapshotRepository interface {
	// Insert stores a new snapshot, assigning its ID and CreatedAt.
	Insert(ctx context.Context, s *versioning.Snapshot) (string, error)
	// Get returns the snapshot with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*versioning.Snapshot, error)
	// ListByContent returns all snapshots for one content key, newest first.
	ListByContent(ctx context.Context, ct versioning.ContentType, contentID string) ([]*versioning.Snapshot, error)
	// DeleteOlderThan removes up to limit snapshots created strictly before
	// cutoff, oldest first, and returns how many were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int64) (int64, error)
	// Count returns the total number of stored snapshots.
	Count(ctx context.Context) (int64, error)
	// CreatedAtBounds returns the oldest and newest CreatedAt across all
	// snapshots; both are nil when the store is empty.
	CreatedAtBounds(ctx context.Context) (oldest, newest *time.Time, err error)
}

// SettingsRepository provides keyed boolean settings with upsert semantics.
type SettingsRepository interface {
	// GetBool returns the stored value for key. An absent key is false, not
	// an error.
	GetBool(ctx context.Context, key string) (bool, error)
	// SetBool upserts the value for key.
	SetBool(ctx context.Context, key string, value bool) error
}
