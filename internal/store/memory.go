// Package store keeps the latest daily series per location, in memory
// and as CSV snapshots on disk.
package store

import (
	"sync"

	"github.com/tdhoang/weather-insight/internal/series"
	"github.com/tdhoang/weather-insight/internal/weather"
)

// MemoryStore is a concurrency-safe in-memory series store. Saved
// series are sorted and trimmed to the retention window, then treated
// as immutable snapshots.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key, value: sorted series snapshot
	data map[string]*series.Series

	// maxDays caps records per location; <= 0 means unlimited.
	maxDays int
}

// NewMemoryStore creates a MemoryStore with an optional retention cap.
func NewMemoryStore(maxDays int) *MemoryStore {
	return &MemoryStore{
		data:    make(map[string]*series.Series),
		maxDays: maxDays,
	}
}

// SaveSeries replaces the stored series for a location, keeping only
// the most recent maxDays records.
func (s *MemoryStore) SaveSeries(loc weather.Location, ser *series.Series) {
	sorted := ser.SortedByDate()
	if s.maxDays > 0 && sorted.Len() > s.maxDays {
		over := sorted.Len() - s.maxDays
		sorted = &series.Series{Records: sorted.Records[over:]}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[loc.Key()] = sorted
}

// GetSeries returns the stored snapshot for a location.
func (s *MemoryStore) GetSeries(loc weather.Location) (*series.Series, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ser, ok := s.data[loc.Key()]
	if !ok || ser.IsEmpty() {
		return nil, false
	}
	return ser, true
}
