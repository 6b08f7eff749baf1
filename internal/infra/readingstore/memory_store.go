package readingstore

import (
	"context"
	"sync"

	"github.com/yanqian/salinity-watch/internal/domain/monitor"
	"github.com/yanqian/salinity-watch/internal/domain/water"
)

// MemoryStore keeps the window in process memory for single-instance deployments and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	window *water.Window
}

// NewMemoryStore constructs a store holding at most capacity readings.
func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{window: water.NewWindow(capacity)}
}

// Append implements monitor.ReadingStore.
func (s *MemoryStore) Append(_ context.Context, reading water.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window.Push(reading)
	return nil
}

// Recent implements monitor.ReadingStore.
func (s *MemoryStore) Recent(_ context.Context) ([]water.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window.Snapshot(), nil
}

// Latest implements monitor.ReadingStore.
func (s *MemoryStore) Latest(_ context.Context) (water.Reading, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.window.Latest()
	return r, ok, nil
}

var _ monitor.ReadingStore = (*MemoryStore)(nil)
