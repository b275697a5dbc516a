package engine

import (
	"sort"

	"github.com/mthtitumir/spotfly/internal/domain"
)

// SortBy returns the offers ordered by the given sort option.
// Sorting is stable: offers with equal keys keep their relative input order.
//
// Sort options:
//   - SortRelevant (default): identity, the order the engine received
//   - SortPriceLow / SortPriceHigh: numeric total price, ascending/descending
//   - SortDuration: outbound itinerary minutes, ascending
//
// The input slice is never mutated; the result is always a fresh copy.
func SortBy(offers []domain.FlightOffer, mode domain.SortOption) []domain.FlightOffer {
	result := make([]domain.FlightOffer, len(offers))
	copy(result, offers)

	if len(result) <= 1 {
		return result
	}

	switch mode {
	case domain.SortPriceLow:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].PriceAmount() < result[j].PriceAmount()
		})
	case domain.SortPriceHigh:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].PriceAmount() > result[j].PriceAmount()
		})
	case domain.SortDuration:
		sort.SliceStable(result, func(i, j int) bool {
			return outboundMinutes(result[i]) < outboundMinutes(result[j])
		})
	case domain.SortRelevant:
		// No resort.
	}

	return result
}

// outboundMinutes returns the outbound itinerary duration in minutes,
// degrading to 0 when the itinerary or its duration is absent.
func outboundMinutes(offer domain.FlightOffer) int {
	out := offer.Outbound()
	if out == nil {
		return 0
	}
	return ParseDurationMinutes(out.Duration)
}
