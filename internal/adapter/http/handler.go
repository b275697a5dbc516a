package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/mthtitumir/spotfly/internal/adapter/http/response"
	"github.com/mthtitumir/spotfly/internal/domain"
	"github.com/mthtitumir/spotfly/internal/usecase"
)

// HeaderClientID carries the caller's identity for recent-search history.
const HeaderClientID = "X-Client-ID"

// FlightHandler handles HTTP requests for flight-related endpoints.
type FlightHandler struct {
	useCase usecase.FlightSearchUseCase
}

// NewFlightHandler creates a new FlightHandler with the given use case.
func NewFlightHandler(uc usecase.FlightSearchUseCase) *FlightHandler {
	return &FlightHandler{
		useCase: uc,
	}
}

// SearchFlights handles POST /api/v1/flights/search.
func (h *FlightHandler) SearchFlights(c echo.Context) error {
	var req SearchFlightsRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	criteria := ToDomainCriteria(&req)
	opts := ToSearchOptions(&req, c.Request().Header.Get(HeaderClientID))

	result, err := h.useCase.Search(c.Request().Context(), criteria, opts)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, result)
}

// SearchLocations handles GET /api/v1/flights/locations?keyword=.
func (h *FlightHandler) SearchLocations(c echo.Context) error {
	keyword := c.QueryParam("keyword")

	locations, err := h.useCase.Locations(c.Request().Context(), keyword)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.LocationResults(c, locations)
}

// RecentSearches handles GET /api/v1/flights/recent. The client is
// identified by the X-Client-ID header.
func (h *FlightHandler) RecentSearches(c echo.Context) error {
	clientID := c.Request().Header.Get(HeaderClientID)
	if clientID == "" {
		return response.BadRequest(c, "X-Client-ID header is required")
	}

	searches, err := h.useCase.Recent(c.Request().Context(), clientID)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.RecentSearchResults(c, searches)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *FlightHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *FlightHandler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return response.ValidationErrorWithMessage(c, err.Error())
	case errors.Is(err, domain.ErrNotConfigured):
		return response.ServiceUnavailable(c)
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	case errors.Is(err, domain.ErrUpstreamFailure):
		return response.UpstreamFailure(c)
	default:
		return response.InternalServerError(c)
	}
}

// Health handles GET /health.
func (h *FlightHandler) Health(c echo.Context) error {
	return response.Health(c)
}
