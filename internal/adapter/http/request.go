// Package http provides the HTTP handler layer for the flight search API.
// It handles request parsing, validation, response formatting, and error
// mapping.
package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SearchFlightsRequest represents the request body for flight search.
type SearchFlightsRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "JFK")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "LHR")
	Destination string `json:"destination"`

	// DepartureDate is the outbound date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// ReturnDate is the optional inbound date in YYYY-MM-DD format
	ReturnDate string `json:"returnDate,omitempty"`

	// Adults is the number of adult passengers (1-9, default 1)
	Adults int `json:"adults,omitempty"`

	// Children is the number of child passengers (0-8)
	Children int `json:"children,omitempty"`

	// TravelClass is the requested cabin: ECONOMY, PREMIUM_ECONOMY,
	// BUSINESS or FIRST (optional)
	TravelClass string `json:"travelClass,omitempty"`

	// NonStop restricts the upstream search to nonstop offers
	NonStop *bool `json:"nonStop,omitempty"`

	// MaxPrice asks the upstream for offers at or below this price
	MaxPrice *int `json:"maxPrice,omitempty"`

	// MaxResults caps the number of offers requested upstream (1-250)
	MaxResults int `json:"max,omitempty"`

	// Filters contains optional result-narrowing criteria
	Filters *FilterDTO `json:"filters,omitempty"`

	// SortBy orders results: relevant, price-low, price-high, duration
	SortBy string `json:"sortBy,omitempty"`

	// FeaturedCount is how many offers each featured ranking returns
	FeaturedCount int `json:"featuredCount,omitempty"`

	// IncludeDailyAverages adds the per-departure-day mean price view
	IncludeDailyAverages bool `json:"includeDailyAverages,omitempty"`
}

// FilterDTO represents optional filters applied to the offer list.
// Example: {"maxPrice": 800, "stops": [0], "departureHours": {"from": 6, "to": 12}}
type FilterDTO struct {
	// MinPrice keeps offers priced at or above this amount
	MinPrice *float64 `json:"minPrice,omitempty" example:"100"`

	// MaxPrice keeps offers priced at or below this amount
	MaxPrice *float64 `json:"maxPrice,omitempty" example:"800"`

	// Stops is the set of allowed outbound stop counts (0 = direct only)
	Stops []int `json:"stops,omitempty" example:"0,1"`

	// Airlines keeps offers validated by any of these airline codes
	Airlines []string `json:"airlines,omitempty" example:"BA,AA"`

	// DepartureHours constrains the outbound local departure hour
	DepartureHours *HourRangeDTO `json:"departureHours,omitempty"`

	// ArrivalHours constrains the outbound local arrival hour
	ArrivalHours *HourRangeDTO `json:"arrivalHours,omitempty"`

	// MaxDurationMinutes keeps offers whose outbound lasts at most this long
	MaxDurationMinutes *int `json:"maxDurationMinutes,omitempty" example:"480"`
}

// HourRangeDTO is an inclusive hour-of-day window.
type HourRangeDTO struct {
	// From is the first allowed hour (0-23)
	From int `json:"from"`

	// To is the last allowed hour (0-23)
	To int `json:"to"`
}

// Validation regex patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Valid travel classes.
var validTravelClasses = map[string]bool{
	"ECONOMY":         true,
	"PREMIUM_ECONOMY": true,
	"BUSINESS":        true,
	"FIRST":           true,
	"":                true, // Empty lets the provider decide
}

// Valid sort options.
var validSortOptions = map[string]bool{
	"relevant":   true,
	"price-low":  true,
	"price-high": true,
	"duration":   true,
	"":           true, // Empty defaults to relevant
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate validates the search request, normalizing airport codes and
// travel class to uppercase in place.
func (r *SearchFlightsRequest) Validate() error {
	errs := &ValidationErrors{}

	r.validateOrigin(errs)
	r.validateDestination(errs)
	r.validateOriginDestinationDifferent(errs)
	r.validateDates(errs)
	r.validatePassengers(errs)
	r.validateTravelClass(errs)
	r.validateBounds(errs)
	r.validateSortBy(errs)
	r.validateFilters(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SearchFlightsRequest) validateOrigin(errs *ValidationErrors) {
	if r.Origin == "" {
		errs.Add("origin", "origin is required")
		return
	}

	origin := strings.ToUpper(r.Origin)
	if !airportCodePattern.MatchString(origin) {
		errs.Add("origin", "origin must be a valid 3-letter IATA airport code")
		return
	}
	r.Origin = origin
}

func (r *SearchFlightsRequest) validateDestination(errs *ValidationErrors) {
	if r.Destination == "" {
		errs.Add("destination", "destination is required")
		return
	}

	dest := strings.ToUpper(r.Destination)
	if !airportCodePattern.MatchString(dest) {
		errs.Add("destination", "destination must be a valid 3-letter IATA airport code")
		return
	}
	r.Destination = dest
}

func (r *SearchFlightsRequest) validateOriginDestinationDifferent(errs *ValidationErrors) {
	if r.Origin != "" && strings.EqualFold(r.Origin, r.Destination) {
		errs.Add("destination", "origin and destination must be different")
	}
}

func (r *SearchFlightsRequest) validateDates(errs *ValidationErrors) {
	departure := r.validateDate(errs, "departureDate", r.DepartureDate, true)

	if r.ReturnDate == "" {
		return
	}
	ret := r.validateDate(errs, "returnDate", r.ReturnDate, false)
	if !departure.IsZero() && !ret.IsZero() && ret.Before(departure) {
		errs.Add("returnDate", "returnDate must not be before departureDate")
	}
}

func (r *SearchFlightsRequest) validateDate(errs *ValidationErrors, field, value string, required bool) time.Time {
	if value == "" {
		if required {
			errs.Add(field, field+" is required")
		}
		return time.Time{}
	}

	if !datePattern.MatchString(value) {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return time.Time{}
	}

	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		errs.Add(field, field+" is not a valid date")
		return time.Time{}
	}
	return parsed
}

func (r *SearchFlightsRequest) validatePassengers(errs *ValidationErrors) {
	if r.Adults < 0 || r.Adults > 9 {
		errs.Add("adults", "adults must be between 1 and 9")
	}
	if r.Children < 0 || r.Children > 8 {
		errs.Add("children", "children must be between 0 and 8")
	}
}

func (r *SearchFlightsRequest) validateTravelClass(errs *ValidationErrors) {
	class := strings.ToUpper(r.TravelClass)
	if !validTravelClasses[class] {
		errs.Add("travelClass", "travelClass must be one of: ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST")
		return
	}
	r.TravelClass = class
}

func (r *SearchFlightsRequest) validateBounds(errs *ValidationErrors) {
	if r.MaxResults < 0 || r.MaxResults > 250 {
		errs.Add("max", "max must be between 0 and 250 (0 uses the default)")
	}
	if r.MaxPrice != nil && *r.MaxPrice < 0 {
		errs.Add("maxPrice", "maxPrice must be a positive number")
	}
	if r.FeaturedCount < 0 {
		errs.Add("featuredCount", "featuredCount must be a positive number")
	}
}

func (r *SearchFlightsRequest) validateSortBy(errs *ValidationErrors) {
	if !validSortOptions[strings.ToLower(r.SortBy)] {
		errs.Add("sortBy", "sortBy must be one of: relevant, price-low, price-high, duration")
	}
}

func (r *SearchFlightsRequest) validateFilters(errs *ValidationErrors) {
	if r.Filters == nil {
		return
	}

	if r.Filters.MinPrice != nil && *r.Filters.MinPrice < 0 {
		errs.Add("filters.minPrice", "minPrice must be a non-negative number")
	}
	if r.Filters.MaxPrice != nil && *r.Filters.MaxPrice < 0 {
		errs.Add("filters.maxPrice", "maxPrice must be a non-negative number")
	}
	if r.Filters.MinPrice != nil && r.Filters.MaxPrice != nil &&
		*r.Filters.MinPrice > *r.Filters.MaxPrice {
		errs.Add("filters", "minPrice must be less than or equal to maxPrice")
	}

	for i, stops := range r.Filters.Stops {
		if stops < 0 {
			errs.Add(fmt.Sprintf("filters.stops[%d]", i), "stop count must be non-negative")
		}
	}

	for i, airline := range r.Filters.Airlines {
		normalized := strings.ToUpper(strings.TrimSpace(airline))
		if len(normalized) < 2 || len(normalized) > 3 {
			errs.Add(fmt.Sprintf("filters.airlines[%d]", i),
				"airline code must be 2 or 3 characters")
		}
		r.Filters.Airlines[i] = normalized
	}

	r.validateHourRange(errs, "filters.departureHours", r.Filters.DepartureHours)
	r.validateHourRange(errs, "filters.arrivalHours", r.Filters.ArrivalHours)

	if r.Filters.MaxDurationMinutes != nil && *r.Filters.MaxDurationMinutes < 0 {
		errs.Add("filters.maxDurationMinutes", "maxDurationMinutes must be a non-negative number")
	}
}

func (r *SearchFlightsRequest) validateHourRange(errs *ValidationErrors, field string, hr *HourRangeDTO) {
	if hr == nil {
		return
	}
	if hr.From < 0 || hr.From > 23 {
		errs.Add(field+".from", "from must be an hour between 0 and 23")
	}
	if hr.To < 0 || hr.To > 23 {
		errs.Add(field+".to", "to must be an hour between 0 and 23")
	}
	if hr.From > hr.To {
		errs.Add(field, "from must be less than or equal to to")
	}
}
