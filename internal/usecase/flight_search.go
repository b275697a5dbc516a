// Package usecase orchestrates a flight search: fetch offers from the
// source, run the ranking engine over them, and assemble the response views.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mthtitumir/spotfly/internal/adapter/store"
	"github.com/mthtitumir/spotfly/internal/domain"
	"github.com/mthtitumir/spotfly/internal/engine"
	"github.com/mthtitumir/spotfly/internal/infrastructure/logger"
)

// MinLocationKeywordLength is the shortest keyword accepted by location
// autocomplete.
const MinLocationKeywordLength = 2

// FlightSearchUseCase defines the flight search operations exposed to the
// HTTP layer.
type FlightSearchUseCase interface {
	// Search fetches offers for the criteria and returns them filtered,
	// sorted and decorated with facets, featured picks and chart series.
	Search(ctx context.Context, criteria domain.SearchCriteria, opts SearchOptions) (*domain.SearchResponse, error)

	// Locations returns airport/city candidates for an autocomplete keyword.
	Locations(ctx context.Context, keyword string) ([]domain.Location, error)

	// Recent returns the client's recent searches, most recent first.
	Recent(ctx context.Context, clientID string) ([]store.RecentSearch, error)
}

// flightSearchUseCase implements FlightSearchUseCase.
type flightSearchUseCase struct {
	source  domain.OfferSource
	recents store.RecentSearches
	log     *logger.Logger

	defaultMaxResults    int
	defaultFeaturedCount int
}

// Option customizes the use case.
type Option func(*flightSearchUseCase)

// WithDefaults sets the fallback result cap and featured-ranking size applied
// when a request leaves them unset. Non-positive values keep the built-in
// defaults.
func WithDefaults(maxResults, featuredCount int) Option {
	return func(uc *flightSearchUseCase) {
		if maxResults > 0 {
			uc.defaultMaxResults = maxResults
		}
		if featuredCount > 0 {
			uc.defaultFeaturedCount = featuredCount
		}
	}
}

// NewFlightSearchUseCase wires the use case. A nil logger falls back to a
// no-op logger.
func NewFlightSearchUseCase(source domain.OfferSource, recents store.RecentSearches, log *logger.Logger, opts ...Option) FlightSearchUseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &flightSearchUseCase{
		source:               source,
		recents:              recents,
		log:                  log,
		defaultFeaturedCount: DefaultFeaturedCount,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Search implements FlightSearchUseCase.Search.
//
// Facets and featured rankings are computed over the FULL offer set, not the
// filtered one: the filter UI needs stable bounds and the quick picks must
// not vanish while the user narrows the list. The price series follows the
// filtered set in provider order, so scatter points track what the list
// shows regardless of the chosen sort.
func (uc *flightSearchUseCase) Search(ctx context.Context, criteria domain.SearchCriteria, opts SearchOptions) (*domain.SearchResponse, error) {
	startTime := time.Now()
	if opts.FeaturedCount <= 0 {
		opts.FeaturedCount = uc.defaultFeaturedCount
	}
	opts.normalize()

	if criteria.MaxResults == 0 && uc.defaultMaxResults > 0 {
		criteria.MaxResults = uc.defaultMaxResults
	}
	criteria.SetDefaults()
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	page, err := uc.source.SearchOffers(ctx, criteria)
	if err != nil {
		return nil, err
	}

	filtered := engine.Filter(page.Offers, opts.Filters)
	series := engine.PriceSeries(filtered)
	sorted := engine.SortBy(filtered, opts.SortBy)

	response := &domain.SearchResponse{
		Criteria: criteria,
		Meta: domain.SearchMeta{
			Count:         page.Count,
			FilteredCount: len(filtered),
			SearchTimeMs:  time.Since(startTime).Milliseconds(),
		},
		Offers: sorted,
		Facets: domain.Facets{
			Airlines:   engine.UniqueAirlines(page.Offers),
			PriceRange: engine.PriceRange(page.Offers),
		},
		Featured: domain.Featured{
			Cheapest:  engine.Cheapest(page.Offers, opts.FeaturedCount),
			Quickest:  engine.Quickest(page.Offers, opts.FeaturedCount),
			Nonstop:   engine.Nonstop(page.Offers, opts.FeaturedCount),
			BestValue: engine.BestValue(page.Offers, opts.FeaturedCount),
		},
		PriceSeries: series,
		Carriers:    page.Carriers,
	}

	if opts.IncludeDailyAverages {
		response.DailyPrices = engine.DailyAverages(filtered)
	}

	// Recording history is best effort; a store failure must not fail
	// the search.
	if opts.ClientID != "" && uc.recents != nil {
		if err := uc.recents.Add(ctx, opts.ClientID, criteria); err != nil {
			uc.log.Warn().Err(err).Str("client_id", opts.ClientID).Msg("failed to record recent search")
		}
	}

	return response, nil
}

// Locations implements FlightSearchUseCase.Locations.
func (uc *flightSearchUseCase) Locations(ctx context.Context, keyword string) ([]domain.Location, error) {
	if len(keyword) < MinLocationKeywordLength {
		return nil, fmt.Errorf("%w: keyword must be at least %d characters", domain.ErrInvalidRequest, MinLocationKeywordLength)
	}
	return uc.source.SearchLocations(ctx, keyword)
}

// Recent implements FlightSearchUseCase.Recent.
func (uc *flightSearchUseCase) Recent(ctx context.Context, clientID string) ([]store.RecentSearch, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: client id is required", domain.ErrInvalidRequest)
	}
	if uc.recents == nil {
		return []store.RecentSearch{}, nil
	}
	return uc.recents.List(ctx, clientID)
}
