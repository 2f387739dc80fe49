package versioning

import (
	"fmt"
	"time"
)

// ContentType identifies which kind of live content item a snapshot belongs to.
// Posts carry an optional description field; pages do not.
type ContentType string

const (
	ContentTypePost ContentType = "post"
	ContentTypePage ContentType = "page"
)

// ParseContentType validates a raw string (e.g. from a URL segment).
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case ContentTypePost, ContentTypePage:
		return ContentType(s), nil
	}
	return "", fmt.Errorf("unknown content type %q", s)
}

// Source records where a snapshot came from.
type Source string

const (
	SourceSync      Source = "sync"
	SourceDashboard Source = "dashboard"
	SourceRestore   Source = "restore"
)

const (
	// RetentionWindow is how long snapshots are kept before the sweeper may
	// delete them.
	RetentionWindow = 72 * time.Hour

	// CleanupBatchSize bounds how many snapshots a single sweep deletes.
	// Backlogs larger than this drain over successive scheduler ticks.
	CleanupBatchSize = 1000

	previewLength = 150
)

// Snapshot is one recorded copy of a content item's editable fields.
// Immutable after insert; only the retention sweeper removes records.
type Snapshot struct {
	ID          string      `json:"id" bson:"id"`
	ContentType ContentType `json:"contentType" bson:"contentType"`
	ContentID   string      `json:"contentId" bson:"contentId"`
	Slug        string      `json:"slug" bson:"slug"`
	Title       string      `json:"title" bson:"title"`
	Content     string      `json:"content" bson:"content"`
	Description string      `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
	Source      Source      `json:"source" bson:"source"`
}

// VersionSummary is the list-view projection of a snapshot.
type VersionSummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	CreatedAt      time.Time `json:"createdAt"`
	Source         Source    `json:"source"`
	ContentPreview string    `json:"contentPreview"`
}

// Stats is the aggregate view over the whole snapshot store.
type Stats struct {
	Enabled       bool       `json:"enabled"`
	TotalVersions int64      `json:"totalVersions"`
	OldestVersion *time.Time `json:"oldestVersion"`
	NewestVersion *time.Time `json:"newestVersion"`
}

// RestoreResult reports the outcome of a restore attempt. Not-found cases are
// carried here rather than as errors so callers can branch on Success.
type RestoreResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ContentPreview truncates a body to the first 150 characters, appending an
// ellipsis marker only when something was cut.
func ContentPreview(content string) string {
	r := []rune(content)
	if len(r) <= previewLength {
		return content
	}
	return string(r[:previewLength]) + "..."
}

// Summary builds the list-view projection for this snapshot.
func (s *Snapshot) Summary() VersionSummary {
	return VersionSummary{
		ID:             s.ID,
		Title:          s.Title,
		CreatedAt:      s.CreatedAt,
		Source:         s.Source,
		ContentPreview: ContentPreview(s.Content),
	}
}
