package amadeus

import "github.com/mthtitumir/spotfly/internal/domain"

// tokenResponse is the OAuth2 client-credentials grant response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// offersResponse is the /v2/shopping/flight-offers envelope. The offer
// payloads decode straight into domain values; only the envelope is local.
type offersResponse struct {
	Meta struct {
		Count int `json:"count"`
	} `json:"meta"`
	Data         []domain.FlightOffer `json:"data"`
	Dictionaries struct {
		Carriers map[string]string `json:"carriers"`
	} `json:"dictionaries"`
}

// locationsResponse is the /v1/reference-data/locations envelope.
type locationsResponse struct {
	Data []locationData `json:"data"`
}

type locationData struct {
	IATACode string `json:"iataCode"`
	Name     string `json:"name"`
	Address  struct {
		CityName    string `json:"cityName"`
		CountryCode string `json:"countryCode"`
	} `json:"address"`
}

func (l locationData) toDomain() domain.Location {
	return domain.Location{
		IATACode:    l.IATACode,
		Name:        l.Name,
		CityName:    l.Address.CityName,
		CountryCode: l.Address.CountryCode,
	}
}
