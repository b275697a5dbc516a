package amadeus

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mthtitumir/spotfly/internal/domain"
	"github.com/mthtitumir/spotfly/internal/infrastructure/retry"
)

const offersBody = `{
	"meta": {"count": 2},
	"data": [
		{
			"id": "1",
			"numberOfBookableSeats": 4,
			"itineraries": [{"duration": "PT7H30M", "segments": [
				{"departure": {"iataCode": "JFK", "at": "2026-10-12T18:00:00"},
				 "arrival": {"iataCode": "LHR", "at": "2026-10-13T06:30:00"},
				 "carrierCode": "BA", "number": "112"}
			]}],
			"price": {"currency": "USD", "total": "542.50", "grandTotal": "542.50"},
			"validatingAirlineCodes": ["BA"]
		},
		{
			"id": "2",
			"numberOfBookableSeats": 2,
			"itineraries": [{"duration": "PT9H", "segments": [
				{"departure": {"iataCode": "JFK", "at": "2026-10-12T10:00:00"},
				 "arrival": {"iataCode": "LHR", "at": "2026-10-12T19:00:00"},
				 "carrierCode": "AA", "number": "100"}
			]}],
			"price": {"currency": "USD", "total": "489.00", "grandTotal": "489.00"},
			"validatingAirlineCodes": ["AA"]
		}
	],
	"dictionaries": {"carriers": {"BA": "BRITISH AIRWAYS", "AA": "AMERICAN AIRLINES"}}
}`

// fastRetry keeps client retry tests quick.
var fastRetry = retry.Config{
	MaxAttempts:  3,
	InitialDelay: 1 * time.Millisecond,
	MaxDelay:     5 * time.Millisecond,
	Multiplier:   2.0,
	RetryIf:      retry.SkipPermanent,
}

// newAPIServer serves the token endpoint plus a custom offers handler.
func newAPIServer(t *testing.T, offersHandler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":1800}`)
	})
	mux.HandleFunc("/v2/shopping/flight-offers", offersHandler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(server *httptest.Server) *Client {
	return NewClient(server.URL, "key", "secret",
		WithHTTPClient(server.Client()),
		WithRetryConfig(fastRetry),
	)
}

func criteria() domain.SearchCriteria {
	c := domain.SearchCriteria{
		Origin:        "JFK",
		Destination:   "LHR",
		DepartureDate: "2026-10-12",
	}
	c.SetDefaults()
	return c
}

func TestSearchOffers(t *testing.T) {
	var gotQuery atomic.Value
	server := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, offersBody)
	})

	page, err := newTestClient(server).SearchOffers(context.Background(), criteria())
	require.NoError(t, err)

	assert.Equal(t, 2, page.Count)
	require.Len(t, page.Offers, 2)
	assert.Equal(t, "1", page.Offers[0].ID)
	assert.Equal(t, "542.50", page.Offers[0].Price.Total)
	assert.Equal(t, "PT7H30M", page.Offers[0].Itineraries[0].Duration)
	assert.Equal(t, "BRITISH AIRWAYS", page.Carriers["BA"])

	query := gotQuery.Load().(url.Values)
	assert.Equal(t, "JFK", query["originLocationCode"][0])
	assert.Equal(t, "LHR", query["destinationLocationCode"][0])
	assert.Equal(t, "2026-10-12", query["departureDate"][0])
	assert.Equal(t, "1", query["adults"][0])
	assert.Equal(t, "50", query["max"][0])
}

func TestSearchOffers_OptionalParams(t *testing.T) {
	var gotQuery atomic.Value
	server := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		fmt.Fprint(w, `{"meta":{"count":0},"data":[]}`)
	})

	c := criteria()
	c.ReturnDate = "2026-10-19"
	c.Children = 2
	c.TravelClass = "BUSINESS"
	nonStop := true
	c.NonStop = &nonStop
	maxPrice := 800
	c.MaxPrice = &maxPrice

	_, err := newTestClient(server).SearchOffers(context.Background(), c)
	require.NoError(t, err)

	query := gotQuery.Load().(url.Values)
	assert.Equal(t, "2026-10-19", query["returnDate"][0])
	assert.Equal(t, "2", query["children"][0])
	assert.Equal(t, "BUSINESS", query["travelClass"][0])
	assert.Equal(t, "true", query["nonStop"][0])
	assert.Equal(t, "800", query["maxPrice"][0])
}

func TestSearchOffers_OmitsZeroChildren(t *testing.T) {
	var gotQuery atomic.Value
	server := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		fmt.Fprint(w, `{"meta":{"count":0},"data":[]}`)
	})

	_, err := newTestClient(server).SearchOffers(context.Background(), criteria())
	require.NoError(t, err)

	query := gotQuery.Load().(url.Values)
	assert.NotContains(t, query, "children")
	assert.NotContains(t, query, "returnDate")
	assert.NotContains(t, query, "nonStop")
}

func TestSearchOffers_RetriesServerErrors(t *testing.T) {
	var attempts int32
	server := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, offersBody)
	})

	page, err := newTestClient(server).SearchOffers(context.Background(), criteria())
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestSearchOffers_DoesNotRetryClientErrors(t *testing.T) {
	var attempts int32
	server := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := newTestClient(server).SearchOffers(context.Background(), criteria())
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestSearchOffers_RefreshesTokenOn401(t *testing.T) {
	var attempts int32
	server := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, offersBody)
	})

	page, err := newTestClient(server).SearchOffers(context.Background(), criteria())
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestSearchOffers_MissingCredentials(t *testing.T) {
	client := NewClient("http://unused", "", "")

	_, err := client.SearchOffers(context.Background(), criteria())
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestSearchOffers_CountFallsBackToDataLength(t *testing.T) {
	server := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"1","price":{"total":"100.00"}}]}`)
	})

	page, err := newTestClient(server).SearchOffers(context.Background(), criteria())
	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)
}

func TestSearchLocations(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":1800}`)
	})
	mux.HandleFunc("/v1/reference-data/locations", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, "CITY,AIRPORT", query.Get("subType"))
		assert.Equal(t, "new york", query.Get("keyword"))
		assert.Equal(t, "10", query.Get("page[limit]"))
		fmt.Fprint(w, `{"data":[
			{"iataCode":"JFK","name":"JOHN F KENNEDY INTL","address":{"cityName":"NEW YORK","countryCode":"US"}},
			{"iataCode":"NYC","name":"NEW YORK","address":{"cityName":"NEW YORK","countryCode":"US"}}
		]}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	locations, err := newTestClient(server).SearchLocations(context.Background(), "new york")
	require.NoError(t, err)

	require.Len(t, locations, 2)
	assert.Equal(t, domain.Location{
		IATACode:    "JFK",
		Name:        "JOHN F KENNEDY INTL",
		CityName:    "NEW YORK",
		CountryCode: "US",
	}, locations[0])
}

func TestSearchOffers_MalformedBody(t *testing.T) {
	server := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": not json`)
	})

	_, err := newTestClient(server).SearchOffers(context.Background(), criteria())
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}
