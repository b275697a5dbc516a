package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SearchCriteria defines the parameters for a flight search request.
type SearchCriteria struct {
	// Origin is the IATA code of the departure airport (e.g. "JFK")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g. "LHR")
	Destination string `json:"destination"`

	// DepartureDate is the outbound date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// ReturnDate is the optional inbound date in YYYY-MM-DD format.
	// Empty means a one-way search.
	ReturnDate string `json:"returnDate,omitempty"`

	// Adults is the number of adult passengers (default: 1)
	Adults int `json:"adults"`

	// Children is the number of child passengers. Absent means 0.
	Children int `json:"children,omitempty"`

	// TravelClass is the requested cabin: ECONOMY, PREMIUM_ECONOMY,
	// BUSINESS or FIRST. Empty lets the provider decide.
	TravelClass string `json:"travelClass,omitempty"`

	// NonStop, when set, restricts the upstream search to nonstop offers
	NonStop *bool `json:"nonStop,omitempty"`

	// MaxPrice, when set, asks the upstream for offers at or below this price
	MaxPrice *int `json:"maxPrice,omitempty"`

	// MaxResults caps the number of offers requested upstream (default: 50)
	MaxResults int `json:"max,omitempty"`
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// validTravelClasses defines the cabin values the upstream accepts.
var validTravelClasses = map[string]bool{
	"ECONOMY":         true,
	"PREMIUM_ECONOMY": true,
	"BUSINESS":        true,
	"FIRST":           true,
}

// Validate checks the search criteria. Returns a wrapped ErrInvalidRequest
// error on the first failing field.
func (s *SearchCriteria) Validate() error {
	if s.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidRequest)
	}
	if !airportCodeRegex.MatchString(s.Origin) {
		return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, s.Origin)
	}

	if s.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}
	if !airportCodeRegex.MatchString(s.Destination) {
		return fmt.Errorf("%w: destination must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, s.Destination)
	}
	if s.Origin == s.Destination {
		return fmt.Errorf("%w: origin and destination must be different", ErrInvalidRequest)
	}

	departure, err := parseSearchDate("departureDate", s.DepartureDate, true)
	if err != nil {
		return err
	}

	if s.ReturnDate != "" {
		ret, err := parseSearchDate("returnDate", s.ReturnDate, false)
		if err != nil {
			return err
		}
		if ret.Before(departure) {
			return fmt.Errorf("%w: returnDate must not be before departureDate", ErrInvalidRequest)
		}
	}

	if s.Adults < 1 {
		return fmt.Errorf("%w: adults must be at least 1", ErrInvalidRequest)
	}
	if s.Adults > 9 {
		return fmt.Errorf("%w: adults cannot exceed 9", ErrInvalidRequest)
	}
	if s.Children < 0 {
		return fmt.Errorf("%w: children cannot be negative", ErrInvalidRequest)
	}
	if s.Children > 8 {
		return fmt.Errorf("%w: children cannot exceed 8", ErrInvalidRequest)
	}

	if s.TravelClass != "" && !validTravelClasses[s.TravelClass] {
		return fmt.Errorf("%w: travelClass must be one of: ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST; got %q", ErrInvalidRequest, s.TravelClass)
	}

	if s.MaxPrice != nil && *s.MaxPrice < 0 {
		return fmt.Errorf("%w: maxPrice cannot be negative", ErrInvalidRequest)
	}
	if s.MaxResults < 0 || s.MaxResults > 250 {
		return fmt.Errorf("%w: max must be between 0 and 250", ErrInvalidRequest)
	}

	return nil
}

// parseSearchDate validates a YYYY-MM-DD date field.
func parseSearchDate(field, value string, required bool) (time.Time, error) {
	if value == "" {
		if required {
			return time.Time{}, fmt.Errorf("%w: %s is required", ErrInvalidRequest, field)
		}
		return time.Time{}, nil
	}
	if !dateRegex.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: %s must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, field, value)
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s is not a valid date: %s", ErrInvalidRequest, field, value)
	}
	return t, nil
}

// SetDefaults applies default values to empty optional fields.
// Absent adults means one traveler; absent max means 50 offers.
func (s *SearchCriteria) SetDefaults() {
	s.Origin = strings.ToUpper(s.Origin)
	s.Destination = strings.ToUpper(s.Destination)
	s.TravelClass = strings.ToUpper(s.TravelClass)
	if s.Adults == 0 {
		s.Adults = 1
	}
	if s.MaxResults == 0 {
		s.MaxResults = 50
	}
}

// Key returns a canonical identity for the criteria, used to deduplicate
// recent searches. Two criteria with the same key describe the same search.
func (s *SearchCriteria) Key() string {
	parts := []string{
		s.Origin,
		s.Destination,
		s.DepartureDate,
		s.ReturnDate,
		strconv.Itoa(s.Adults),
		strconv.Itoa(s.Children),
		s.TravelClass,
	}
	if s.NonStop != nil && *s.NonStop {
		parts = append(parts, "nonstop")
	}
	return strings.Join(parts, "|")
}
