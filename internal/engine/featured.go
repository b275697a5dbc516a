package engine

import (
	"sort"

	"github.com/mthtitumir/spotfly/internal/domain"
)

// Best-value score weights. Price dominates; the sum is 1.0 so every score
// stays in [0, 1].
const (
	weightPrice    = 0.6
	weightDuration = 0.4
)

// Cheapest returns the k lowest-priced offers, cheapest first.
func Cheapest(offers []domain.FlightOffer, k int) []domain.FlightOffer {
	return topK(offers, k, func(a, b domain.FlightOffer) bool {
		return a.PriceAmount() < b.PriceAmount()
	})
}

// Quickest returns the k offers with the shortest outbound itinerary,
// shortest first.
func Quickest(offers []domain.FlightOffer, k int) []domain.FlightOffer {
	return topK(offers, k, func(a, b domain.FlightOffer) bool {
		return outboundMinutes(a) < outboundMinutes(b)
	})
}

// Nonstop returns the k cheapest offers whose outbound itinerary is a single
// segment. Offers with connections never appear in the result.
func Nonstop(offers []domain.FlightOffer, k int) []domain.FlightOffer {
	direct := make([]domain.FlightOffer, 0, len(offers))
	for _, offer := range offers {
		if out := offer.Outbound(); out != nil && len(out.Segments) == 1 {
			direct = append(direct, offer)
		}
	}
	return topK(direct, k, func(a, b domain.FlightOffer) bool {
		return a.PriceAmount() < b.PriceAmount()
	})
}

// BestValue returns the k offers with the best weighted price/duration
// balance. Each offer's price and outbound duration are normalized against
// the full set's bounds and combined as 0.6*price + 0.4*duration; a lower
// score means cheaper and faster, so the result is sorted score ascending.
func BestValue(offers []domain.FlightOffer, k int) []domain.FlightOffer {
	if len(offers) == 0 || k <= 0 {
		return []domain.FlightOffer{}
	}

	scores := bestValueScores(offers)

	indexes := make([]int, len(offers))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(a, b int) bool {
		return scores[indexes[a]] < scores[indexes[b]]
	})

	if k > len(indexes) {
		k = len(indexes)
	}
	result := make([]domain.FlightOffer, 0, k)
	for _, idx := range indexes[:k] {
		result = append(result, offers[idx])
	}
	return result
}

// bestValueScores computes the score of every offer against the set's own
// price and duration bounds. A degenerate axis (all offers equal, or all
// durations zero) contributes 0, so single-offer sets score 0.
func bestValueScores(offers []domain.FlightOffer) []float64 {
	minPrice, maxPrice := priceBounds(offers)
	maxDuration := 0
	for _, offer := range offers {
		if m := outboundMinutes(offer); m > maxDuration {
			maxDuration = m
		}
	}

	priceSpread := maxPrice - minPrice

	scores := make([]float64, len(offers))
	for i, offer := range offers {
		var priceScore, durationScore float64
		if priceSpread > 0 {
			priceScore = (offer.PriceAmount() - minPrice) / priceSpread
		}
		if maxDuration > 0 {
			durationScore = float64(outboundMinutes(offer)) / float64(maxDuration)
		}
		scores[i] = weightPrice*priceScore + weightDuration*durationScore
	}
	return scores
}

// priceBounds returns the minimum and maximum total price across the offers.
func priceBounds(offers []domain.FlightOffer) (min, max float64) {
	for i, offer := range offers {
		price := offer.PriceAmount()
		if i == 0 || price < min {
			min = price
		}
		if price > max {
			max = price
		}
	}
	return min, max
}

// topK copies the offers, stable-sorts them by less, and returns the first k.
// Empty input or k <= 0 yields an empty slice; k beyond the set size yields
// the whole sorted set.
func topK(offers []domain.FlightOffer, k int, less func(a, b domain.FlightOffer) bool) []domain.FlightOffer {
	if len(offers) == 0 || k <= 0 {
		return []domain.FlightOffer{}
	}

	sorted := make([]domain.FlightOffer, len(offers))
	copy(sorted, offers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	if k > len(sorted) {
		k = len(sorted)
	}
	return sorted[:k]
}
