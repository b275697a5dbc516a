package usecase

import "github.com/mthtitumir/spotfly/internal/domain"

// DefaultFeaturedCount is how many offers each featured ranking returns when
// the request does not say otherwise.
const DefaultFeaturedCount = 1

// SearchOptions shape the result view: how the offer list is narrowed and
// ordered, how many featured picks to compute, and whether the per-day price
// view is wanted.
type SearchOptions struct {
	// Filters narrows the offer list; nil means no filtering
	Filters *domain.FilterSpec

	// SortBy orders the offer list; the zero value keeps provider order
	SortBy domain.SortOption

	// FeaturedCount is the size of each featured ranking
	// (default: DefaultFeaturedCount)
	FeaturedCount int

	// IncludeDailyAverages adds the per-departure-day mean price view
	IncludeDailyAverages bool

	// ClientID identifies the caller for recent-search history; empty
	// disables recording
	ClientID string
}

// normalize fills in defaults.
func (o *SearchOptions) normalize() {
	if o.SortBy == "" {
		o.SortBy = domain.SortRelevant
	}
	if o.FeaturedCount <= 0 {
		o.FeaturedCount = DefaultFeaturedCount
	}
}
