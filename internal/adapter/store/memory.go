package store

import (
	"context"
	"sync"

	"github.com/mthtitumir/spotfly/internal/domain"
	"github.com/mthtitumir/spotfly/internal/infrastructure/timeutil"
)

// MemoryStore keeps recent searches in process memory. Suitable for single
// instance deployments and tests; history is lost on restart.
type MemoryStore struct {
	clock timeutil.Clock

	mu      sync.RWMutex
	entries map[string][]RecentSearch
}

// NewMemoryStore creates an empty in-memory store. A nil clock falls back to
// the system clock.
func NewMemoryStore(clock timeutil.Clock) *MemoryStore {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &MemoryStore{
		clock:   clock,
		entries: make(map[string][]RecentSearch),
	}
}

var _ RecentSearches = (*MemoryStore)(nil)

// Add records a search at the front of the client's history. A repeated
// search moves to the front; the list is trimmed to MaxEntries.
func (m *MemoryStore) Add(_ context.Context, clientID string, criteria domain.SearchCriteria) error {
	key := criteria.Key()
	entry := RecentSearch{Criteria: criteria, SearchedAt: m.clock.Now()}

	m.mu.Lock()
	defer m.mu.Unlock()

	history := m.entries[clientID]
	kept := make([]RecentSearch, 0, len(history)+1)
	kept = append(kept, entry)
	for _, existing := range history {
		if existing.Criteria.Key() == key {
			continue
		}
		kept = append(kept, existing)
	}

	if len(kept) > MaxEntries {
		kept = kept[:MaxEntries]
	}
	m.entries[clientID] = kept
	return nil
}

// List returns a copy of the client's history, most recent first.
func (m *MemoryStore) List(_ context.Context, clientID string) ([]RecentSearch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := m.entries[clientID]
	result := make([]RecentSearch, len(history))
	copy(result, history)
	return result, nil
}
