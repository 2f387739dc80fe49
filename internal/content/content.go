package content

import (
	"context"
	"errors"
	"time"

	"github.com/quillcms/go-services/internal/versioning"
)

var (
	ErrNotFound = errors.New("content item not found")
)

// Item is the versioning engine's view of a live post or page. Pages have no
// description; for them the field stays empty.
type Item struct {
	Title       string `json:"title" bson:"title"`
	Content     string `json:"content" bson:"content"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Patch carries the fields a restore writes back onto a live item.
type Patch struct {
	Title        string
	Content      string
	Description  string
	LastSyncedAt time.Time
}

// Repository is the external content repository collaborator. It owns the
// live posts and pages; the versioning engine only reads an item before a
// restore and patches it afterwards.
type Repository interface {
	// Get returns the live item, or (nil, nil) when it no longer exists.
	Get(ctx context.Context, ct versioning.ContentType, id string) (*Item, error)
	// Patch applies the given fields to the live item, stamping its
	// lastSyncedAt. Returns ErrNotFound when the item is gone.
	Patch(ctx context.Context, ct versioning.ContentType, id string, p Patch) error
}
