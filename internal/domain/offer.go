// Package domain contains the core business entities and rules for the flight
// search service. The types mirror the upstream flight-offers contract so that
// responses decode straight into a strictly typed model at the boundary.
package domain

import (
	"strconv"
	"strings"
	"time"
)

// FlightOffer represents one priced, bookable itinerary option returned by the
// flight-data provider. Offers are immutable: the engine and all derived views
// only ever read them.
type FlightOffer struct {
	// ID is the offer identifier, stable for the lifetime of a search result set
	ID string `json:"id"`

	// OneWay reports whether the offer covers a single direction only
	OneWay bool `json:"oneWay,omitempty"`

	// LastTicketingDate is the last date the offer can be ticketed (YYYY-MM-DD)
	LastTicketingDate string `json:"lastTicketingDate,omitempty"`

	// NumberOfBookableSeats is the remaining inventory count, used for
	// scarcity signaling only
	NumberOfBookableSeats int `json:"numberOfBookableSeats"`

	// Itineraries holds one entry for a one-way trip or two for a round trip;
	// the outbound itinerary is always index 0
	Itineraries []Itinerary `json:"itineraries"`

	// Price contains the offer's pricing information
	Price Price `json:"price"`

	// ValidatingAirlineCodes is the ordered list of carrier codes; the first
	// entry is treated as "the" airline for display and grouping
	ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`

	// TravelerPricings contains per-traveler fare details
	TravelerPricings []TravelerPricing `json:"travelerPricings,omitempty"`
}

// Itinerary is one direction of travel composed of one or more segments.
type Itinerary struct {
	// Duration is an ISO-8601 duration restricted to hours and minutes,
	// e.g. "PT5H30M"
	Duration string `json:"duration"`

	// Segments is the ordered sequence of flight legs
	Segments []Segment `json:"segments"`
}

// Segment is one nonstop flight leg between two airports.
type Segment struct {
	Departure FlightEndpoint `json:"departure"`
	Arrival   FlightEndpoint `json:"arrival"`

	// CarrierCode is the IATA code of the operating airline
	CarrierCode string `json:"carrierCode"`

	// Number is the flight number
	Number string `json:"number"`

	// Duration is the segment duration in ISO-8601 form
	Duration string `json:"duration,omitempty"`
}

// FlightEndpoint is a departure or arrival point of a segment.
type FlightEndpoint struct {
	// IATACode is the airport code (e.g. "JFK")
	IATACode string `json:"iataCode"`

	// Terminal is the optional terminal identifier
	Terminal string `json:"terminal,omitempty"`

	// At is the scheduled time as an ISO-8601 timestamp string. Upstream
	// timestamps carry the local wall-clock time of the airport, with or
	// without a UTC offset.
	At string `json:"at"`
}

// Price contains pricing information for an offer.
type Price struct {
	// Currency is the ISO 4217 currency code
	Currency string `json:"currency"`

	// Total is the decimal-formatted total amount
	Total string `json:"total"`

	// Base is the decimal-formatted base fare
	Base string `json:"base,omitempty"`

	// GrandTotal is the decimal-formatted grand total including fees
	GrandTotal string `json:"grandTotal,omitempty"`

	// Fees lists optional fee lines; absent means no fees
	Fees []Fee `json:"fees,omitempty"`
}

// Fee is a single fee line of a price.
type Fee struct {
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

// TravelerPricing contains fare details for one traveler.
type TravelerPricing struct {
	TravelerID           string        `json:"travelerId"`
	FareOption           string        `json:"fareOption,omitempty"`
	TravelerType         string        `json:"travelerType,omitempty"`
	FareDetailsBySegment []FareDetails `json:"fareDetailsBySegment,omitempty"`
}

// FareDetails describes the fare of one segment for one traveler.
type FareDetails struct {
	SegmentID string `json:"segmentId"`
	Cabin     string `json:"cabin,omitempty"`
	FareBasis string `json:"fareBasis,omitempty"`
	Class     string `json:"class,omitempty"`
}

// endpoint timestamp layouts, tried in order. The upstream sandbox omits the
// UTC offset; production includes it.
var endpointTimeLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
}

// Time parses the endpoint timestamp. The second return value is false when
// the timestamp is absent or malformed.
func (e FlightEndpoint) Time() (time.Time, bool) {
	for _, layout := range endpointTimeLayouts {
		if t, err := time.Parse(layout, e.At); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LocalHour returns the local wall-clock hour (0-23) of the endpoint
// timestamp. The offset embedded in the timestamp, if any, is preserved by
// parsing, so Hour() is always the hour a traveler would read at the airport.
func (e FlightEndpoint) LocalHour() (int, bool) {
	t, ok := e.Time()
	if !ok {
		return 0, false
	}
	return t.Hour(), true
}

// PriceAmount returns the numeric total price. Malformed or missing totals
// degrade to 0 rather than failing.
func (o FlightOffer) PriceAmount() float64 {
	amount, err := strconv.ParseFloat(strings.TrimSpace(o.Price.Total), 64)
	if err != nil {
		return 0
	}
	return amount
}

// Outbound returns the outbound itinerary, or nil when the offer has none.
func (o FlightOffer) Outbound() *Itinerary {
	if len(o.Itineraries) == 0 {
		return nil
	}
	return &o.Itineraries[0]
}

// OutboundStops returns the stop count of the outbound itinerary
// (segment count minus one). Offers without outbound segments report 0.
func (o FlightOffer) OutboundStops() int {
	out := o.Outbound()
	if out == nil || len(out.Segments) == 0 {
		return 0
	}
	return len(out.Segments) - 1
}

// PrimaryAirline returns the first validating airline code, or "" when the
// offer carries none.
func (o FlightOffer) PrimaryAirline() string {
	if len(o.ValidatingAirlineCodes) == 0 {
		return ""
	}
	return o.ValidatingAirlineCodes[0]
}

// Cabin returns the cabin class of the primary traveler's first segment,
// or "" when that information is absent.
func (o FlightOffer) Cabin() string {
	if len(o.TravelerPricings) == 0 {
		return ""
	}
	details := o.TravelerPricings[0].FareDetailsBySegment
	if len(details) == 0 {
		return ""
	}
	return details[0].Cabin
}

// Stops returns the stop count of the itinerary. An itinerary with exactly
// one segment is nonstop.
func (it Itinerary) Stops() int {
	if len(it.Segments) == 0 {
		return 0
	}
	return len(it.Segments) - 1
}

// FirstSegment returns the first segment of the itinerary, or nil when it has
// none.
func (it Itinerary) FirstSegment() *Segment {
	if len(it.Segments) == 0 {
		return nil
	}
	return &it.Segments[0]
}

// LastSegment returns the last segment of the itinerary, or nil when it has
// none.
func (it Itinerary) LastSegment() *Segment {
	if len(it.Segments) == 0 {
		return nil
	}
	return &it.Segments[len(it.Segments)-1]
}
