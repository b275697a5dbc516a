// Package integration provides helpers and integration tests for the flight
// search service. Integration tests verify that components work together
// correctly, including HTTP handlers, use cases, stores, and mock sources.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	httpAdapter "github.com/mthtitumir/spotfly/internal/adapter/http"
	"github.com/mthtitumir/spotfly/internal/adapter/store"
	"github.com/mthtitumir/spotfly/internal/domain"
	"github.com/mthtitumir/spotfly/internal/usecase"
)

// TestServer wraps an Echo instance and provides helper methods for
// integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.FlightHandler
}

// NewTestServer creates a new test server with the given use case.
func NewTestServer(uc usecase.FlightSearchUseCase) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	handler := httpAdapter.NewFlightHandler(uc)
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method   string
	Path     string
	Body     interface{}
	ClientID string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	if req.Body != nil {
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)
	if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if req.ClientID != "" {
		httpReq.Header.Set(httpAdapter.HeaderClientID, req.ClientID)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest posts a flight search with the given body.
func (ts *TestServer) SearchRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/flights/search",
		Body:   body,
	})
}

// SearchRequestAs posts a flight search identified by a client ID.
func (ts *TestServer) SearchRequestAs(clientID string, body interface{}) Response {
	return ts.Do(Request{
		Method:   http.MethodPost,
		Path:     "/api/v1/flights/search",
		Body:     body,
		ClientID: clientID,
	})
}

// LocationsRequest makes a location autocomplete request.
func (ts *TestServer) LocationsRequest(keyword string) Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/api/v1/flights/locations?keyword=" + keyword,
	})
}

// RecentRequest fetches the recent searches of a client.
func (ts *TestServer) RecentRequest(clientID string) Response {
	return ts.Do(Request{
		Method:   http.MethodGet,
		Path:     "/api/v1/flights/recent",
		ClientID: clientID,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseSearchResponse parses the response body as a SearchResponse.
func (r *Response) ParseSearchResponse() (*domain.SearchResponse, error) {
	var resp domain.SearchResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	return r.ParseBody()
}

// ParseBody parses the response body as a generic JSON object.
func (r *Response) ParseBody() (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// SearchRequestBody is a helper struct for building search request bodies.
type SearchRequestBody struct {
	Origin               string                 `json:"origin"`
	Destination          string                 `json:"destination"`
	DepartureDate        string                 `json:"departureDate"`
	ReturnDate           string                 `json:"returnDate,omitempty"`
	Adults               int                    `json:"adults,omitempty"`
	Filters              map[string]interface{} `json:"filters,omitempty"`
	SortBy               string                 `json:"sortBy,omitempty"`
	FeaturedCount        int                    `json:"featuredCount,omitempty"`
	IncludeDailyAverages bool                   `json:"includeDailyAverages,omitempty"`
}

// DefaultSearchRequest returns a valid search request body for testing.
func DefaultSearchRequest() SearchRequestBody {
	return SearchRequestBody{
		Origin:        "JFK",
		Destination:   "LHR",
		DepartureDate: "2026-10-12",
		Adults:        1,
	}
}

// CreateUseCase creates a use case over the given source with an in-memory
// recent-search store and no logging.
func CreateUseCase(source domain.OfferSource) usecase.FlightSearchUseCase {
	return usecase.NewFlightSearchUseCase(source, store.NewMemoryStore(nil), nil)
}
