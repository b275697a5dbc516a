package engine

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/mthtitumir/spotfly/internal/domain"
)

// Default price range reported for an empty offer set. A defined fallback,
// not an error: the filter UI needs bounds before any results exist.
var defaultPriceRange = [2]float64{0, 1000}

// UniqueAirlines returns the set union of every offer's validating airline
// codes, sorted lexicographically ascending with each code appearing once.
func UniqueAirlines(offers []domain.FlightOffer) []string {
	codes := make([]string, 0, len(offers))
	for _, offer := range offers {
		codes = append(codes, offer.ValidatingAirlineCodes...)
	}

	unique := lo.Uniq(codes)
	sort.Strings(unique)
	return unique
}

// PriceRange returns [floor(min), ceil(max)] of the offers' total prices,
// or [0, 1000] when the set is empty.
func PriceRange(offers []domain.FlightOffer) [2]float64 {
	if len(offers) == 0 {
		return defaultPriceRange
	}

	min, max := priceBounds(offers)
	return [2]float64{math.Floor(min), math.Ceil(max)}
}
