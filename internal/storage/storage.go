// Package storage holds the catalog snapshot served over HTTP. Snapshots
// are replaced wholesale on rescan, never mutated in place.
package storage

import (
	"sync"

	"github.com/imgworks/shrinker/internal/catalog"
)

type SnapshotStore struct {
	cat *catalog.Catalog
	mu  sync.RWMutex
}

func New(cat *catalog.Catalog) *SnapshotStore {
	return &SnapshotStore{cat: cat}
}

func (s *SnapshotStore) Get() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

func (s *SnapshotStore) Set(cat *catalog.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cat = cat
}
