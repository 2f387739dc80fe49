package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quillcms/go-services/internal/content"
	"github.com/quillcms/go-services/internal/versioning"
	"github.com/quillcms/go-services/internal/versioning/repository"
	"github.com/quillcms/go-services/pkg/logger"
	"github.com/quillcms/go-services/pkg/metrics"
)

const gateKey = "enabled"

// Restore outcome messages surfaced to the operator UI.
const (
	MsgVersionNotFound  = "Version not found"
	MsgOriginalNotFound = "Original content not found"
	MsgRestored         = "Version restored successfully"
)

// CreateVersionInput carries the captured state of a content item as handed
// over by the editing workflow.
type CreateVersionInput struct {
	ContentType versioning.ContentType
	ContentID   string
	Slug        string
	Title       string
	Content     string
	Description string
	Source      versioning.Source
}

// Service defines the version-control operations used by the handler layer
// and the retention command.
type Service interface {
	IsEnabled(ctx context.Context) (bool, error)
	SetEnabled(ctx context.Context, enabled bool) error
	CreateVersion(ctx context.Context, in CreateVersionInput) (string, error)
	GetVersionHistory(ctx context.Context, ct versioning.ContentType, contentID string) ([]versioning.VersionSummary, error)
	GetVersion(ctx context.Context, id string) (*versioning.Snapshot, error)
	RestoreVersion(ctx context.Context, id string) (versioning.RestoreResult, error)
	CleanupOldVersions(ctx context.Context) (int64, error)
	GetStats(ctx context.Context) (*versioning.Stats, error)
}

type service struct {
	versions repository.SnapshotRepository
	settings repository.SettingsRepository
	content  content.Repository
}

// NewService wires a Service from its repositories and the content
// repository collaborator.
func NewService(versions repository.SnapshotRepository, settings repository.SettingsRepository, contentRepo content.Repository) Service {
	return &service{versions: versions, settings: settings, content: contentRepo}
}

// NewMemoryService returns a Service backed entirely by in-memory stores.
// Used in tests and when running without MongoDB; the returned content
// repository can be seeded with live items.
func NewMemoryService() (Service, *content.MemoryRepository) {
	c := content.NewMemoryRepository()
	return NewService(repository.NewMemorySnapshotRepo(), repository.NewMemorySettingsRepo(), c), c
}

// NewMongoService returns a Service backed by the given Mongo database,
// using the contentVersions and versionControlSettings collections plus the
// CMS's posts/pages collections.
func NewMongoService(db *mongo.Database) Service {
	return NewService(
		repository.NewMongoSnapshotRepo(db.Collection("contentVersions")),
		repository.NewMongoSettingsRepo(db.Collection("versionControlSettings")),
		content.NewMongoRepository(db),
	)
}

func (s *service) IsEnabled(ctx context.Context) (bool, error) {
	return s.settings.GetBool(ctx, gateKey)
}

func (s *service) SetEnabled(ctx context.Context, enabled bool) error {
	return s.settings.SetBool(ctx, gateKey, enabled)
}

func (s *service) CreateVersion(ctx context.Context, in CreateVersionInput) (string, error) {
	enabled, err := s.IsEnabled(ctx)
	if err != nil {
		return "", fmt.Errorf("read version gate: %w", err)
	}
	if !enabled {
		// deliberate no-op, not an error: the editing workflow always calls
		// this hook and the gate decides whether anything is recorded
		metrics.VersionsSkipped.Inc()
		return "", nil
	}
	src := in.Source
	if src == "" {
		src = versioning.SourceDashboard
	}
	snap := &versioning.Snapshot{
		ContentType: in.ContentType,
		ContentID:   in.ContentID,
		Slug:        in.Slug,
		Title:       in.Title,
		Content:     in.Content,
		Description: in.Description,
		Source:      src,
	}
	id, err := s.versions.Insert(ctx, snap)
	if err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}
	metrics.VersionsCreated.WithLabelValues(string(src)).Inc()
	return id, nil
}

func (s *service) GetVersionHistory(ctx context.Context, ct versioning.ContentType, contentID string) ([]versioning.VersionSummary, error) {
	snaps, err := s.versions.ListByContent(ctx, ct, contentID)
	if err != nil {
		return nil, err
	}
	out := make([]versioning.VersionSummary, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, snap.Summary())
	}
	return out, nil
}

func (s *service) GetVersion(ctx context.Context, id string) (*versioning.Snapshot, error) {
	return s.versions.Get(ctx, id)
}

// RestoreVersion applies a snapshot onto its live content item. The live
// item's current state is recorded as a new snapshot (source "restore")
// strictly before the overwrite, so a failure between the two steps leaves
// the live item untouched and at worst a surplus backup behind. The backup
// bypasses the gate: losing pre-restore state would be unrecoverable.
func (s *service) RestoreVersion(ctx context.Context, id string) (versioning.RestoreResult, error) {
	target, err := s.versions.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.Restores.WithLabelValues("version_missing").Inc()
		return versioning.RestoreResult{Success: false, Message: MsgVersionNotFound}, nil
	}
	if err != nil {
		return versioning.RestoreResult{}, fmt.Errorf("load snapshot: %w", err)
	}

	live, err := s.content.Get(ctx, target.ContentType, target.ContentID)
	if err != nil {
		return versioning.RestoreResult{}, fmt.Errorf("read live content: %w", err)
	}
	if live == nil {
		metrics.Restores.WithLabelValues("content_missing").Inc()
		return versioning.RestoreResult{Success: false, Message: MsgOriginalNotFound}, nil
	}

	backup := &versioning.Snapshot{
		ContentType: target.ContentType,
		ContentID:   target.ContentID,
		Slug:        target.Slug,
		Title:       live.Title,
		Content:     live.Content,
		Description: live.Description,
		Source:      versioning.SourceRestore,
	}
	if _, err := s.versions.Insert(ctx, backup); err != nil {
		metrics.Restores.WithLabelValues("error").Inc()
		return versioning.RestoreResult{}, fmt.Errorf("record pre-restore backup: %w", err)
	}
	metrics.VersionsCreated.WithLabelValues(string(versioning.SourceRestore)).Inc()

	patch := content.Patch{
		Title:        target.Title,
		Content:      target.Content,
		Description:  target.Description,
		LastSyncedAt: time.Now().UTC(),
	}
	if err := s.content.Patch(ctx, target.ContentType, target.ContentID, patch); err != nil {
		// the backup above is durable; surface the failed overwrite instead
		// of rolling it back
		logger.Errorf("restore %s: backup recorded but content patch failed: %v", id, err)
		metrics.Restores.WithLabelValues("error").Inc()
		return versioning.RestoreResult{}, fmt.Errorf("apply restored content: %w", err)
	}

	metrics.Restores.WithLabelValues("success").Inc()
	return versioning.RestoreResult{Success: true, Message: MsgRestored}, nil
}

func (s *service) CleanupOldVersions(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-versioning.RetentionWindow)
	n, err := s.versions.DeleteOlderThan(ctx, cutoff, versioning.CleanupBatchSize)
	if err != nil {
		return 0, fmt.Errorf("delete expired snapshots: %w", err)
	}
	if n > 0 {
		logger.Infof("retention sweep removed %d snapshots older than %s", n, cutoff.Format(time.RFC3339))
		metrics.VersionsPruned.Add(float64(n))
	}
	return n, nil
}

func (s *service) GetStats(ctx context.Context) (*versioning.Stats, error) {
	enabled, err := s.IsEnabled(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.versions.Count(ctx)
	if err != nil {
		return nil, err
	}
	oldest, newest, err := s.versions.CreatedAtBounds(ctx)
	if err != nil {
		return nil, err
	}
	return &versioning.Stats{
		Enabled:       enabled,
		TotalVersions: total,
		OldestVersion: oldest,
		NewestVersion: newest,
	}, nil
}
