package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mthtitumir/spotfly/internal/domain"
	"github.com/mthtitumir/spotfly/test/mock"
)

// TestHandler_SearchFlights_Success tests a successful flight search via HTTP.
func TestHandler_SearchFlights_Success(t *testing.T) {
	// Arrange
	source := mock.NewSource().
		WithOffers(mock.SampleOffers(3)).
		WithCarriers(mock.SampleCarriers())
	ts := NewTestServer(CreateUseCase(source))

	// Act
	resp := ts.SearchRequest(DefaultSearchRequest())

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	searchResp, err := resp.ParseSearchResponse()
	require.NoError(t, err)
	assert.Len(t, searchResp.Offers, 3)
	assert.Equal(t, 3, searchResp.Meta.Count)
	assert.Equal(t, 3, searchResp.Meta.FilteredCount)
	assert.Equal(t, "JFK", searchResp.Criteria.Origin)
	assert.Equal(t, []string{"AA", "BA", "DL"}, searchResp.Facets.Airlines)
	assert.Equal(t, [2]float64{250, 350}, searchResp.Facets.PriceRange)
	assert.Len(t, searchResp.PriceSeries, 3)
	assert.Equal(t, "AMERICAN AIRLINES", searchResp.Carriers["AA"])
}

// TestHandler_ResponseBodyStructure tests that the response body carries the
// complete offer and derived-view structure.
func TestHandler_ResponseBodyStructure(t *testing.T) {
	// Arrange
	source := mock.NewSource().WithOffers(mock.SampleOffers(1))
	ts := NewTestServer(CreateUseCase(source))

	// Act
	resp := ts.SearchRequest(DefaultSearchRequest())

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	searchResp, err := resp.ParseSearchResponse()
	require.NoError(t, err)
	require.Len(t, searchResp.Offers, 1)

	offer := searchResp.Offers[0]
	assert.Equal(t, "1", offer.ID)
	assert.Equal(t, "250.00", offer.Price.Total)
	assert.Equal(t, "USD", offer.Price.Currency)
	require.Len(t, offer.Itineraries, 1)
	assert.Equal(t, "PT7H30M", offer.Itineraries[0].Duration)
	assert.Equal(t, "JFK", offer.Itineraries[0].Segments[0].Departure.IATACode)

	require.Len(t, searchResp.Featured.Cheapest, 1)
	assert.Equal(t, "1", searchResp.Featured.Cheapest[0].ID)
	require.Len(t, searchResp.PriceSeries, 1)
	point := searchResp.PriceSeries[0]
	assert.Equal(t, 250.0, point.Price)
	assert.Equal(t, "JFK", point.Origin)
	assert.Equal(t, "LHR", point.Destination)
	assert.Equal(t, "7h 30m", point.Duration)
	assert.Equal(t, 0, point.Stops)
}

// TestHandler_FilterAndSort tests that request filters narrow the offer list
// while facets keep covering the full set.
func TestHandler_FilterAndSort(t *testing.T) {
	// Arrange: sample offers are priced 250, 300, 350.
	source := mock.NewSource().WithOffers(mock.SampleOffers(3))
	ts := NewTestServer(CreateUseCase(source))

	req := DefaultSearchRequest()
	req.Filters = map[string]interface{}{"maxPrice": 300}
	req.SortBy = "price-high"

	// Act
	resp := ts.SearchRequest(req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	searchResp, err := resp.ParseSearchResponse()
	require.NoError(t, err)
	require.Len(t, searchResp.Offers, 2)
	assert.Equal(t, "2", searchResp.Offers[0].ID)
	assert.Equal(t, "1", searchResp.Offers[1].ID)
	assert.Equal(t, 3, searchResp.Meta.Count)
	assert.Equal(t, 2, searchResp.Meta.FilteredCount)

	// Facets still cover the unfiltered set.
	assert.Equal(t, [2]float64{250, 350}, searchResp.Facets.PriceRange)
}

// TestHandler_DailyAverages tests the optional per-day price view.
func TestHandler_DailyAverages(t *testing.T) {
	// Arrange
	source := mock.NewSource().WithOffers(mock.SampleOffers(2))
	ts := NewTestServer(CreateUseCase(source))

	req := DefaultSearchRequest()
	req.IncludeDailyAverages = true

	// Act
	resp := ts.SearchRequest(req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	searchResp, err := resp.ParseSearchResponse()
	require.NoError(t, err)
	require.Len(t, searchResp.DailyPrices, 1)
	assert.Equal(t, "2026-10-12", searchResp.DailyPrices[0].Date)
	assert.Equal(t, 275, searchResp.DailyPrices[0].Price) // mean of 250 and 300
	assert.Equal(t, 2, searchResp.DailyPrices[0].Count)
}

// TestHandler_ValidationError tests that invalid search input returns 400
// with field details.
func TestHandler_ValidationError(t *testing.T) {
	// Arrange
	source := mock.NewSource().WithOffers(mock.SampleOffers(1))
	ts := NewTestServer(CreateUseCase(source))

	req := DefaultSearchRequest()
	req.Origin = "NEWYORK"
	req.DepartureDate = "12-10-2026"

	// Act
	resp := ts.SearchRequest(req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, 0, source.CallCount())

	errResp, err := resp.ParseError()
	require.NoError(t, err)
	assert.Equal(t, "validation_error", errResp["code"])
	details, ok := errResp["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "origin")
	assert.Contains(t, details, "departureDate")
}

// TestHandler_UpstreamFailure tests that provider failures map to 502.
func TestHandler_UpstreamFailure(t *testing.T) {
	// Arrange
	source := mock.NewSource().
		WithError(fmt.Errorf("%w: connection reset", domain.ErrUpstreamFailure))
	ts := NewTestServer(CreateUseCase(source))

	// Act
	resp := ts.SearchRequest(DefaultSearchRequest())

	// Assert
	assert.Equal(t, http.StatusBadGateway, resp.Code)

	errResp, err := resp.ParseError()
	require.NoError(t, err)
	assert.Equal(t, "upstream_error", errResp["code"])
}

// TestHandler_SourceNotConfigured tests that a credential-less provider maps
// to 503.
func TestHandler_SourceNotConfigured(t *testing.T) {
	// Arrange
	source := mock.NewSource().WithError(domain.ErrNotConfigured)
	ts := NewTestServer(CreateUseCase(source))

	// Act
	resp := ts.SearchRequest(DefaultSearchRequest())

	// Assert
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)

	errResp, err := resp.ParseError()
	require.NoError(t, err)
	assert.Equal(t, "service_unavailable", errResp["code"])
}

// TestHandler_Locations tests the airport autocomplete endpoint.
func TestHandler_Locations(t *testing.T) {
	// Arrange
	source := mock.NewSource().WithLocations(mock.SampleLocations())
	ts := NewTestServer(CreateUseCase(source))

	// Act
	resp := ts.LocationsRequest("new")

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	body, err := resp.ParseBody()
	require.NoError(t, err)
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "JFK", first["iataCode"])
}

// TestHandler_Locations_KeywordTooShort tests keyword length validation.
func TestHandler_Locations_KeywordTooShort(t *testing.T) {
	source := mock.NewSource().WithLocations(mock.SampleLocations())
	ts := NewTestServer(CreateUseCase(source))

	resp := ts.LocationsRequest("n")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, 0, source.CallCount())
}

// TestHandler_RecentSearches tests that searches are recorded per client and
// returned most recent first.
func TestHandler_RecentSearches(t *testing.T) {
	// Arrange
	source := mock.NewSource().WithOffers(mock.SampleOffers(1))
	ts := NewTestServer(CreateUseCase(source))

	first := DefaultSearchRequest()
	second := DefaultSearchRequest()
	second.Destination = "CDG"

	require.Equal(t, http.StatusOK, ts.SearchRequestAs("client-1", first).Code)
	require.Equal(t, http.StatusOK, ts.SearchRequestAs("client-1", second).Code)
	require.Equal(t, http.StatusOK, ts.SearchRequestAs("client-2", first).Code)

	// Act
	resp := ts.RecentRequest("client-1")

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	body, err := resp.ParseBody()
	require.NoError(t, err)
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 2)

	newest := data[0].(map[string]interface{})
	criteria := newest["criteria"].(map[string]interface{})
	assert.Equal(t, "CDG", criteria["destination"])
}

// TestHandler_RecentSearches_RequiresClientID tests that the recent endpoint
// rejects anonymous requests.
func TestHandler_RecentSearches_RequiresClientID(t *testing.T) {
	source := mock.NewSource()
	ts := NewTestServer(CreateUseCase(source))

	resp := ts.RecentRequest("")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

// TestHandler_HealthCheck tests the health endpoint.
func TestHandler_HealthCheck(t *testing.T) {
	ts := NewTestServer(CreateUseCase(mock.NewSource()))

	resp := ts.HealthRequest()

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(resp.Body))
}
