package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/quillcms/go-services/internal/versioning"
)

// MemorySnapshotRepo is a simple in-memory snapshot store used for unit tests
// and for running the service without MongoDB.
type MemorySnapshotRepo struct {
	mu    sync.RWMutex
	store map[string]*versioning.Snapshot
	seq   map[string]int64 // insertion order, tiebreak for equal CreatedAt
	next  int64
}

func NewMemorySnapshotRepo() *MemorySnapshotRepo {
	return &MemorySnapshotRepo{
		store: make(map[string]*versioning.Snapshot),
		seq:   make(map[string]int64),
	}
}

func (m *MemorySnapshotRepo) Insert(ctx context.Context, s *versioning.Snapshot) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	if s.ID == "" {
		s.ID = fmt.Sprintf("ver_%s_%d", time.Now().UTC().Format("20060102T150405.000000000"), m.next)
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	cp := *s
	m.store[s.ID] = &cp
	m.seq[s.ID] = m.next
	return s.ID, nil
}

func (m *MemorySnapshotRepo) Get(ctx context.Context, id string) (*versioning.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.store[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemorySnapshotRepo) ListByContent(ctx context.Context, ct versioning.ContentType, contentID string) ([]*versioning.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*versioning.Snapshot{}
	for _, s := range m.store {
		if s.ContentType == ct && s.ContentID == contentID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return m.seq[out[i].ID] > m.seq[out[j].ID]
	})
	return out, nil
}

func (m *MemorySnapshotRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	eligible := []*versioning.Snapshot{}
	for _, s := range m.store {
		if s.CreatedAt.Before(cutoff) {
			eligible = append(eligible, s)
		}
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].CreatedAt.Before(eligible[j].CreatedAt) })
	if int64(len(eligible)) > limit {
		eligible = eligible[:limit]
	}
	for _, s := range eligible {
		delete(m.store, s.ID)
		delete(m.seq, s.ID)
	}
	return int64(len(eligible)), nil
}

func (m *MemorySnapshotRepo) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.store)), nil
}

func (m *MemorySnapshotRepo) CreatedAtBounds(ctx context.Context) (*time.Time, *time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var oldest, newest *time.Time
	for _, s := range m.store {
		t := s.CreatedAt
		if oldest == nil || t.Before(*oldest) {
			tt := t
			oldest = &tt
		}
		if newest == nil || t.After(*newest) {
			tt := t
			newest = &tt
		}
	}
	return oldest, newest, nil
}

// MemorySettingsRepo stores keyed boolean settings in memory.
type MemorySettingsRepo struct {
	mu    sync.RWMutex
	store map[string]bool
}

func NewMemorySettingsRepo() *MemorySettingsRepo {
	return &MemorySettingsRepo{store: make(map[string]bool)}
}

func (m *MemorySettingsRepo) GetBool(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store[key], nil
}

func (m *MemorySettingsRepo) SetBool(ctx context.Context, key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
	return nil
}
