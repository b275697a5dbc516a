package engine

import (
	"fmt"

	"github.com/mthtitumir/spotfly/internal/domain"
)

// makeOffer builds a one-way offer with stops+1 outbound segments departing
// on 2026-10-12. Segment times step two hours apart so hour filters have
// something to bite on.
func makeOffer(id, price, duration string, stops int, airlines ...string) domain.FlightOffer {
	if len(airlines) == 0 {
		airlines = []string{"AA"}
	}

	segments := make([]domain.Segment, stops+1)
	for i := range segments {
		segments[i] = domain.Segment{
			Departure: domain.FlightEndpoint{
				IATACode: fmt.Sprintf("AP%d", i),
				At:       fmt.Sprintf("2026-10-12T%02d:00:00", 8+2*i),
			},
			Arrival: domain.FlightEndpoint{
				IATACode: fmt.Sprintf("AP%d", i+1),
				At:       fmt.Sprintf("2026-10-12T%02d:00:00", 9+2*i),
			},
			CarrierCode: airlines[0],
			Number:      "100",
		}
	}

	return domain.FlightOffer{
		ID:                    id,
		NumberOfBookableSeats: 5,
		Itineraries: []domain.Itinerary{
			{Duration: duration, Segments: segments},
		},
		Price:                  domain.Price{Currency: "USD", Total: price},
		ValidatingAirlineCodes: airlines,
	}
}

// makeOfferAt builds a single-segment offer with explicit endpoint
// timestamps, for hour-window and series tests.
func makeOfferAt(id, price, departAt, arriveAt string) domain.FlightOffer {
	return domain.FlightOffer{
		ID:                    id,
		NumberOfBookableSeats: 3,
		Itineraries: []domain.Itinerary{
			{
				Duration: "PT2H",
				Segments: []domain.Segment{
					{
						Departure:   domain.FlightEndpoint{IATACode: "JFK", At: departAt},
						Arrival:     domain.FlightEndpoint{IATACode: "LHR", At: arriveAt},
						CarrierCode: "AA",
						Number:      "100",
					},
				},
			},
		},
		Price:                  domain.Price{Currency: "USD", Total: price},
		ValidatingAirlineCodes: []string{"AA"},
	}
}

// makeSegmentlessOffer builds an offer whose outbound itinerary has zero
// segments, the edge case for hour and duration constraints.
func makeSegmentlessOffer(id, price string) domain.FlightOffer {
	return domain.FlightOffer{
		ID:          id,
		Itineraries: []domain.Itinerary{{Duration: "PT1H"}},
		Price:       domain.Price{Currency: "USD", Total: price},
		ValidatingAirlineCodes: []string{"AA"},
	}
}

// Pointer helpers for optional filter fields.
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
