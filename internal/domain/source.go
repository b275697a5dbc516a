package domain

import "context"

//go:generate mockgen -source=source.go -destination=mock_source.go -package=domain

// OfferSource is the port to the external flight-data provider. The engine
// never talks to it directly; the use case fetches a page of offers and hands
// them to the engine as plain values.
//
// Implementations must report every failure mode (authentication, upstream
// error, network failure) as an error wrapping ErrUpstreamFailure, and must
// never return partially decoded offers.
type OfferSource interface {
	// SearchOffers returns the offers matching the criteria plus the
	// provider's result count.
	SearchOffers(ctx context.Context, criteria SearchCriteria) (*OfferPage, error)

	// SearchLocations returns airport/city candidates for a free-text
	// keyword. The caller guarantees the keyword is at least 2 characters.
	SearchLocations(ctx context.Context, keyword string) ([]Location, error)
}

// OfferPage is one page of search results from the offer source.
type OfferPage struct {
	// Offers is the raw, unranked offer list
	Offers []FlightOffer

	// Count is the provider-reported result count
	Count int

	// Carriers maps airline codes to display names, when the provider
	// supplies a dictionary
	Carriers map[string]string
}
