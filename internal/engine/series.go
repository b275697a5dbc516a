package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/mthtitumir/spotfly/internal/domain"
)

// PriceSeries projects each offer onto one price point, in input order.
// No aggregation, filtering, or sorting is applied: the chart decides how to
// bucket the scatter. Offers without outbound segments still produce a point;
// their endpoint fields stay empty.
func PriceSeries(offers []domain.FlightOffer) []domain.PricePoint {
	points := make([]domain.PricePoint, 0, len(offers))
	for _, offer := range offers {
		point := domain.PricePoint{
			ID:      offer.ID,
			Price:   offer.PriceAmount(),
			Airline: offer.PrimaryAirline(),
			Stops:   offer.OutboundStops(),
			Seats:   offer.NumberOfBookableSeats,
		}

		if out := offer.Outbound(); out != nil {
			point.Duration = FormatDuration(ParseDurationMinutes(out.Duration))
			if first := out.FirstSegment(); first != nil {
				point.DepartureTime = first.Departure.At
				point.Origin = first.Departure.IATACode
			}
			if last := out.LastSegment(); last != nil {
				point.ArrivalTime = last.Arrival.At
				point.Destination = last.Arrival.IATACode
			}
		} else {
			point.Duration = FormatDuration(0)
		}

		points = append(points, point)
	}
	return points
}

// DailyAverages aggregates offers into one point per departure calendar date:
// the rounded mean total price of the offers departing that day, plus the
// contributing offer count, sorted by date. Offers without a departure
// timestamp are skipped.
func DailyAverages(offers []domain.FlightOffer) []domain.DailyPrice {
	type bucket struct {
		total float64
		count int
	}
	buckets := make(map[string]*bucket)

	for _, offer := range offers {
		date := departureDate(offer)
		if date == "" {
			continue
		}
		b, ok := buckets[date]
		if !ok {
			b = &bucket{}
			buckets[date] = b
		}
		b.total += offer.PriceAmount()
		b.count++
	}

	result := make([]domain.DailyPrice, 0, len(buckets))
	for date, b := range buckets {
		result = append(result, domain.DailyPrice{
			Date:  date,
			Price: int(math.Round(b.total / float64(b.count))),
			Count: b.count,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

// departureDate extracts the YYYY-MM-DD prefix of the outbound departure
// timestamp, or "" when the offer has no outbound segments.
func departureDate(offer domain.FlightOffer) string {
	out := offer.Outbound()
	if out == nil {
		return ""
	}
	first := out.FirstSegment()
	if first == nil {
		return ""
	}
	date, _, found := strings.Cut(first.Departure.At, "T")
	if !found {
		return ""
	}
	return date
}
