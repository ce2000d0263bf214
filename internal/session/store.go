// Package session owns the in-memory activity collection for the current
// parse session. The store is replaced wholesale after each successful
// parse cycle, patched in place on edits, and cleared when a new cycle
// begins. Nothing is persisted across sessions.
package session

import (
	"sync"

	"github.com/niems-digital/emslog/internal/models"
)

// Store is the single-session activity collection. One goroutine drives
// the parse workflow, but the HTTP surface may read concurrently, so
// access is guarded with a RWMutex.
type Store struct {
	mu         sync.RWMutex
	activities []models.Activity
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{}
}

// ReplaceAll discards prior contents and stores the given records in
// order. Used after a successful parse cycle.
func (s *Store) ReplaceAll(records []models.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = make([]models.Activity, len(records))
	copy(s.activities, records)
}

// UpsertByID replaces the record whose ID matches. When no record matches
// the operation is a no-op and returns false — it never appends, so edits
// cannot resurrect records from a superseded parse cycle. The ID itself is
// immutable: the stored record keeps its ID regardless of the input.
func (s *Store) UpsertByID(record models.Activity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.activities {
		if s.activities[i].ID == record.ID {
			s.activities[i] = record
			return true
		}
	}
	return false
}

// Clear empties the store. Called when a new parse cycle begins so stale
// results are never shown while the extraction call is in flight.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = nil
}

// List returns a copy of the current records in ingestion order.
func (s *Store) List() []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// Get returns the record with the given ID.
func (s *Store) Get(id string) (models.Activity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.activities {
		if s.activities[i].ID == id {
			return s.activities[i], true
		}
	}
	return models.Activity{}, false
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}
