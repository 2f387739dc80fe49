package content

import (
	"context"
	"sync"
	"time"

	"github.com/quillcms/go-services/internal/versioning"
)

// MemoryRepository is an in-memory stand-in for the CMS content store, used
// in unit tests and when running without MongoDB.
type MemoryRepository struct {
	mu     sync.RWMutex
	items  map[string]*Item
	synced map[string]time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items:  make(map[string]*Item),
		synced: make(map[string]time.Time),
	}
}

func key(ct versioning.ContentType, id string) string {
	return string(ct) + "/" + id
}

// Put seeds or replaces a live item.
func (r *MemoryRepository) Put(ct versioning.ContentType, id string, it Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ct == versioning.ContentTypePage {
		it.Description = ""
	}
	r.items[key(ct, id)] = &it
}

// Delete removes a live item (simulates deletion in the CMS).
func (r *MemoryRepository) Delete(ct versioning.ContentType, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, key(ct, id))
	delete(r.synced, key(ct, id))
}

// LastSyncedAt reports the stamp left by the most recent Patch, if any.
func (r *MemoryRepository) LastSyncedAt(ct versioning.ContentType, id string) (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.synced[key(ct, id)]
	return t, ok
}

func (r *MemoryRepository) Get(ctx context.Context, ct versioning.ContentType, id string) (*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[key(ct, id)]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *MemoryRepository) Patch(ctx context.Context, ct versioning.ContentType, id string, p Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[key(ct, id)]
	if !ok {
		return ErrNotFound
	}
	it.Title = p.Title
	it.Content = p.Content
	if ct == versioning.ContentTypePost {
		it.Description = p.Description
	}
	r.synced[key(ct, id)] = p.LastSyncedAt
	return nil
}
