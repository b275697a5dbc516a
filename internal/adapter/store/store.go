// Package store persists each client's recent searches, most recent first.
// The in-memory implementation is the default; the Redis one is used when an
// address is configured so recents survive restarts.
package store

import (
	"context"
	"time"

	"github.com/mthtitumir/spotfly/internal/domain"
)

// MaxEntries caps the recent-search history kept per client.
const MaxEntries = 10

// RecentSearch is one remembered search.
type RecentSearch struct {
	// Criteria is the search as the client submitted it, after defaults
	Criteria domain.SearchCriteria `json:"criteria"`

	// SearchedAt is when the search was performed
	SearchedAt time.Time `json:"searchedAt"`
}

// RecentSearches records and lists a client's search history. Repeating a
// search moves it to the front instead of duplicating it; the history is
// trimmed to MaxEntries.
type RecentSearches interface {
	// Add records a search for the client, deduplicating on the criteria's
	// canonical key.
	Add(ctx context.Context, clientID string, criteria domain.SearchCriteria) error

	// List returns the client's searches, most recent first. A client with
	// no history gets an empty slice, not an error.
	List(ctx context.Context, clientID string) ([]RecentSearch, error)
}
