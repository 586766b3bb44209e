package memory

import (
	"sync"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/models"
)

// Repository holds the most recently published snapshot. The poll loop is the
// only writer; it replaces the whole pointer, never mutates a published
// snapshot, so readers always see a consistent cycle.
type Repository struct {
	snapshot *models.Snapshot
	mu       sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) SaveSnapshot(snapshot *models.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = snapshot
}

func (r *Repository) GetSnapshot() *models.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}
