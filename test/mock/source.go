// Package mock provides test doubles for the flight search service.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mthtitumir/spotfly/internal/domain"
)

// Source is a configurable mock implementation of domain.OfferSource.
// It supports configurable delays, errors, and responses for testing
// various scenarios including timeouts and upstream failures.
type Source struct {
	offers    []domain.FlightOffer
	carriers  map[string]string
	locations []domain.Location
	err       error
	delay     time.Duration
	callCount int
	mu        sync.Mutex
}

// NewSource creates a new mock offer source.
// The source is configured using the builder pattern methods.
func NewSource() *Source {
	return &Source{}
}

// WithOffers configures the source to return the given offers.
func (s *Source) WithOffers(offers []domain.FlightOffer) *Source {
	s.offers = offers
	return s
}

// WithCarriers configures the carrier dictionary returned alongside offers.
func (s *Source) WithCarriers(carriers map[string]string) *Source {
	s.carriers = carriers
	return s
}

// WithLocations configures the source to return the given locations.
func (s *Source) WithLocations(locations []domain.Location) *Source {
	s.locations = locations
	return s
}

// WithError configures the source to return the given error.
func (s *Source) WithError(err error) *Source {
	s.err = err
	return s
}

// WithDelay configures the source to wait the given duration before
// responding. This is useful for testing timeout behavior.
func (s *Source) WithDelay(d time.Duration) *Source {
	s.delay = d
	return s
}

// SearchOffers implements domain.OfferSource.SearchOffers.
// It respects context cancellation, applies the configured delay,
// and returns the configured offers or error.
func (s *Source) SearchOffers(ctx context.Context, criteria domain.SearchCriteria) (*domain.OfferPage, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return &domain.OfferPage{
		Offers:   s.offers,
		Count:    len(s.offers),
		Carriers: s.carriers,
	}, nil
}

// SearchLocations implements domain.OfferSource.SearchLocations.
func (s *Source) SearchLocations(ctx context.Context, keyword string) ([]domain.Location, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.locations, nil
}

func (s *Source) wait(ctx context.Context) error {
	s.mu.Lock()
	s.callCount++
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.delay):
		}
	}
	return ctx.Err()
}

// CallCount returns the number of calls made against the source.
// This is useful for verifying interactions.
func (s *Source) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

// Reset resets the call count to zero.
func (s *Source) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callCount = 0
}

// Ensure Source implements domain.OfferSource at compile time.
var _ domain.OfferSource = (*Source)(nil)

// SampleOffers returns a slice of sample flight offers for testing.
// Offers have all required fields populated with realistic values:
// ascending prices, two-hour departure spacing, and alternating carriers.
func SampleOffers(count int) []domain.FlightOffer {
	carriers := []string{"AA", "BA", "DL"}
	offers := make([]domain.FlightOffer, count)

	base := time.Date(2026, 10, 12, 8, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		depart := base.Add(time.Duration(i*2) * time.Hour)
		arrive := depart.Add(7*time.Hour + 30*time.Minute)
		carrier := carriers[i%len(carriers)]

		offers[i] = domain.FlightOffer{
			ID:                    fmt.Sprintf("%d", i+1),
			OneWay:                false,
			NumberOfBookableSeats: 5,
			Itineraries: []domain.Itinerary{
				{
					Duration: "PT7H30M",
					Segments: []domain.Segment{
						{
							Departure: domain.FlightEndpoint{
								IATACode: "JFK",
								At:       depart.Format("2006-01-02T15:04:05"),
							},
							Arrival: domain.FlightEndpoint{
								IATACode: "LHR",
								At:       arrive.Format("2006-01-02T15:04:05"),
							},
							CarrierCode: carrier,
							Number:      fmt.Sprintf("%d", 100+i),
							Duration:    "PT7H30M",
						},
					},
				},
			},
			Price: domain.Price{
				Currency: "USD",
				Total:    fmt.Sprintf("%.2f", 250.0+float64(i*50)),
			},
			ValidatingAirlineCodes: []string{carrier},
		}
	}

	return offers
}

// SampleCarriers returns a carrier dictionary matching SampleOffers.
func SampleCarriers() map[string]string {
	return map[string]string{
		"AA": "AMERICAN AIRLINES",
		"BA": "BRITISH AIRWAYS",
		"DL": "DELTA AIR LINES",
	}
}

// SampleLocations returns airport candidates for testing location search.
func SampleLocations() []domain.Location {
	return []domain.Location{
		{IATACode: "JFK", Name: "JOHN F KENNEDY INTL", CityName: "NEW YORK", CountryCode: "US"},
		{IATACode: "LGA", Name: "LAGUARDIA", CityName: "NEW YORK", CountryCode: "US"},
	}
}
