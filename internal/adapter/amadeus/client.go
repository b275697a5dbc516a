// Package amadeus implements the flight-offer source against the Amadeus
// Self-Service APIs: OAuth2 client-credentials authentication, flight-offer
// search and location autocomplete.
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mthtitumir/spotfly/internal/domain"
	"github.com/mthtitumir/spotfly/internal/infrastructure/logger"
	"github.com/mthtitumir/spotfly/internal/infrastructure/retry"
	"github.com/mthtitumir/spotfly/internal/infrastructure/timeutil"
)

// DefaultBaseURL points at the Amadeus test environment.
const DefaultBaseURL = "https://test.api.amadeus.com"

const defaultTimeout = 15 * time.Second

// Client talks to the Amadeus API and implements domain.OfferSource.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenCache
	retryCfg   retry.Config
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryConfig overrides the retry policy for upstream calls.
func WithRetryConfig(cfg retry.Config) Option {
	return func(c *Client) { c.retryCfg = cfg }
}

// WithLogger sets the client logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithClock overrides the clock used for token expiry. Test hook.
func WithClock(clock timeutil.Clock) Option {
	return func(c *Client) {
		c.tokens = NewTokenCache(c.baseURL, c.tokens.clientID, c.tokens.clientSecret, c.httpClient, clock)
	}
}

// NewClient creates an Amadeus client. An empty baseURL falls back to the
// test environment.
func NewClient(baseURL, apiKey, apiSecret string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		retryCfg:   retry.UpstreamConfig,
		log:        logger.Nop(),
	}
	c.tokens = NewTokenCache(baseURL, apiKey, apiSecret, c.httpClient, timeutil.NewRealClock())
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure Client implements the source port.
var _ domain.OfferSource = (*Client)(nil)

// SearchOffers calls /v2/shopping/flight-offers with the criteria mapped to
// query parameters. Transient failures (5xx, 429, network errors) are
// retried; 4xx responses are not. A single 401 triggers one token refresh.
func (c *Client) SearchOffers(ctx context.Context, criteria domain.SearchCriteria) (*domain.OfferPage, error) {
	query := url.Values{}
	query.Set("originLocationCode", criteria.Origin)
	query.Set("destinationLocationCode", criteria.Destination)
	query.Set("departureDate", criteria.DepartureDate)
	query.Set("adults", strconv.Itoa(criteria.Adults))
	query.Set("max", strconv.Itoa(criteria.MaxResults))

	if criteria.ReturnDate != "" {
		query.Set("returnDate", criteria.ReturnDate)
	}
	if criteria.Children > 0 {
		query.Set("children", strconv.Itoa(criteria.Children))
	}
	if criteria.TravelClass != "" {
		query.Set("travelClass", criteria.TravelClass)
	}
	if criteria.NonStop != nil {
		query.Set("nonStop", strconv.FormatBool(*criteria.NonStop))
	}
	if criteria.MaxPrice != nil {
		query.Set("maxPrice", strconv.Itoa(*criteria.MaxPrice))
	}

	var envelope offersResponse
	if err := c.getJSON(ctx, "/v2/shopping/flight-offers", query, &envelope); err != nil {
		return nil, err
	}

	count := envelope.Meta.Count
	if count == 0 {
		count = len(envelope.Data)
	}

	return &domain.OfferPage{
		Offers:   envelope.Data,
		Count:    count,
		Carriers: envelope.Dictionaries.Carriers,
	}, nil
}

// SearchLocations calls /v1/reference-data/locations restricted to cities
// and airports, capped at 10 candidates.
func (c *Client) SearchLocations(ctx context.Context, keyword string) ([]domain.Location, error) {
	query := url.Values{}
	query.Set("subType", "CITY,AIRPORT")
	query.Set("keyword", keyword)
	query.Set("page[limit]", "10")

	var envelope locationsResponse
	if err := c.getJSON(ctx, "/v1/reference-data/locations", query, &envelope); err != nil {
		return nil, err
	}

	locations := make([]domain.Location, 0, len(envelope.Data))
	for _, loc := range envelope.Data {
		locations = append(locations, loc.toDomain())
	}
	return locations, nil
}

// getJSON performs an authenticated GET against path and decodes the JSON
// body into out. All failures wrap ErrUpstreamFailure except missing
// credentials, which surface ErrNotConfigured.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	body, err := retry.DoWithResult(ctx, func() ([]byte, error) {
		return c.doGet(ctx, path, query)
	}, c.retryCfg)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding response from %s: %v", domain.ErrUpstreamFailure, path, err)
	}
	return nil
}

// doGet runs one attempt: acquire a token, issue the request, classify the
// response. A 401 invalidates the cached token so the retry re-authenticates.
func (c *Client) doGet(ctx context.Context, path string, query url.Values) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			return nil, retry.NewPermanent(err)
		}
		return nil, err
	}

	reqURL := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, retry.NewPermanent(fmt.Errorf("%w: building request: %v", domain.ErrUpstreamFailure, err))
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling %s: %v", domain.ErrUpstreamFailure, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response from %s: %v", domain.ErrUpstreamFailure, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized:
		// Token expired server-side ahead of our margin; refresh and retry.
		c.tokens.Invalidate()
		c.log.Warn().Str("path", path).Msg("access token rejected, refreshing")
		return nil, fmt.Errorf("%w: access token rejected", domain.ErrUpstreamFailure)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		c.log.Warn().Str("path", path).Int("status", resp.StatusCode).Msg("retryable upstream error")
		return nil, fmt.Errorf("%w: upstream returned status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	default:
		c.log.Error().Str("path", path).Int("status", resp.StatusCode).Msg("upstream rejected request")
		return nil, retry.NewPermanent(fmt.Errorf("%w: upstream returned status %d", domain.ErrUpstreamFailure, resp.StatusCode))
	}
}
