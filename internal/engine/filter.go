package engine

import (
	"strings"

	"github.com/mthtitumir/spotfly/internal/domain"
)

// Filter applies the given filter spec to a list of offers.
// It returns a new slice containing only offers that satisfy every present
// constraint, in their original relative order.
//
// Behavior:
//   - Returns the original slice if spec is nil or empty (no filtering)
//   - Absent fields impose no constraint; present constraints combine with AND
//   - Does NOT mutate the input slice
//   - An offer whose outbound itinerary has no segments is skipped by the
//     hour and duration constraints rather than rejected: those constraints
//     cannot be evaluated, and dropping the offer for that would hide data
func Filter(offers []domain.FlightOffer, spec *domain.FilterSpec) []domain.FlightOffer {
	if spec.IsEmpty() {
		return offers
	}

	// Pre-build lookup sets for O(1) membership checks.
	airlineSet := buildCodeSet(spec.Airlines)
	stopsSet := buildStopsSet(spec.Stops)

	result := make([]domain.FlightOffer, 0, len(offers))
	for _, offer := range offers {
		if matches(offer, spec, airlineSet, stopsSet) {
			result = append(result, offer)
		}
	}
	return result
}

// matches checks one offer against every present constraint, short-circuiting
// on the first failure.
func matches(offer domain.FlightOffer, spec *domain.FilterSpec, airlineSet map[string]struct{}, stopsSet map[int]struct{}) bool {
	price := offer.PriceAmount()
	if spec.MinPrice != nil && price < *spec.MinPrice {
		return false
	}
	if spec.MaxPrice != nil && price > *spec.MaxPrice {
		return false
	}

	if len(stopsSet) > 0 {
		if _, ok := stopsSet[offer.OutboundStops()]; !ok {
			return false
		}
	}

	if len(airlineSet) > 0 && !hasAnyAirline(offer.ValidatingAirlineCodes, airlineSet) {
		return false
	}

	out := offer.Outbound()

	if spec.DepartureHours != nil {
		if first := outboundFirstSegment(out); first != nil {
			if hour, ok := first.Departure.LocalHour(); ok && !spec.DepartureHours.Contains(hour) {
				return false
			}
		}
	}

	if spec.ArrivalHours != nil {
		if last := outboundLastSegment(out); last != nil {
			if hour, ok := last.Arrival.LocalHour(); ok && !spec.ArrivalHours.Contains(hour) {
				return false
			}
		}
	}

	if spec.MaxDurationMinutes != nil && out != nil && len(out.Segments) > 0 {
		if ParseDurationMinutes(out.Duration) > *spec.MaxDurationMinutes {
			return false
		}
	}

	return true
}

// hasAnyAirline reports whether at least one of the offer's airline codes is
// in the allowed set (OR semantics, case-insensitive).
func hasAnyAirline(codes []string, set map[string]struct{}) bool {
	for _, code := range codes {
		if _, ok := set[strings.ToUpper(code)]; ok {
			return true
		}
	}
	return false
}

// buildCodeSet creates a case-insensitive lookup set from airline codes.
func buildCodeSet(codes []string) map[string]struct{} {
	if len(codes) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		set[strings.ToUpper(code)] = struct{}{}
	}
	return set
}

// buildStopsSet creates a lookup set from allowed stop counts.
func buildStopsSet(stops []int) map[int]struct{} {
	if len(stops) == 0 {
		return nil
	}
	set := make(map[int]struct{}, len(stops))
	for _, n := range stops {
		set[n] = struct{}{}
	}
	return set
}

// outboundFirstSegment returns the first outbound segment, or nil when the
// itinerary is absent or empty.
func outboundFirstSegment(out *domain.Itinerary) *domain.Segment {
	if out == nil {
		return nil
	}
	return out.FirstSegment()
}

// outboundLastSegment returns the last outbound segment, or nil when the
// itinerary is absent or empty.
func outboundLastSegment(out *domain.Itinerary) *domain.Segment {
	if out == nil {
		return nil
	}
	return out.LastSegment()
}
