package domain

// Location is one airport or city candidate returned by the location
// autocomplete source.
type Location struct {
	// IATACode is the airport or city code (e.g. "JFK")
	IATACode string `json:"iataCode"`

	// Name is the location's display name
	Name string `json:"name"`

	// CityName is the city the location belongs to, when known
	CityName string `json:"cityName,omitempty"`

	// CountryCode is the ISO country code, when known
	CountryCode string `json:"countryCode,omitempty"`
}
