package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mthtitumir/spotfly/internal/domain"
	"github.com/mthtitumir/spotfly/internal/infrastructure/timeutil"
)

// expiryMargin is subtracted from the upstream-reported token lifetime so we
// refresh before the token actually lapses.
const expiryMargin = 5 * time.Minute

// TokenCache holds an OAuth2 client-credentials token for the Amadeus API and
// refreshes it on demand. Concurrent callers racing on an expired token share
// one refresh request.
type TokenCache struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client
	clock        timeutil.Clock

	group singleflight.Group

	mu     sync.RWMutex
	token  string
	expiry time.Time
}

// NewTokenCache creates a token cache for the given credentials. The token
// endpoint is derived from baseURL.
func NewTokenCache(baseURL, clientID, clientSecret string, httpClient *http.Client, clock timeutil.Clock) *TokenCache {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &TokenCache{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     strings.TrimSuffix(baseURL, "/") + "/v1/security/oauth2/token",
		httpClient:   httpClient,
		clock:        clock,
	}
}

// Token returns a valid access token, fetching a fresh one when the cached
// token is absent or within the expiry margin. Returns ErrNotConfigured when
// credentials are missing.
func (tc *TokenCache) Token(ctx context.Context) (string, error) {
	if tc.clientID == "" || tc.clientSecret == "" {
		return "", domain.ErrNotConfigured
	}

	tc.mu.RLock()
	token, expiry := tc.token, tc.expiry
	tc.mu.RUnlock()

	if token != "" && tc.clock.Now().Before(expiry) {
		return token, nil
	}

	result, err, _ := tc.group.Do("token", func() (interface{}, error) {
		// Another caller may have refreshed while we waited on the group.
		tc.mu.RLock()
		token, expiry := tc.token, tc.expiry
		tc.mu.RUnlock()
		if token != "" && tc.clock.Now().Before(expiry) {
			return token, nil
		}
		return tc.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Invalidate drops the cached token so the next Token call fetches a fresh
// one. Called when the upstream rejects a token we believed valid.
func (tc *TokenCache) Invalidate() {
	tc.mu.Lock()
	tc.token = ""
	tc.expiry = time.Time{}
	tc.mu.Unlock()
}

func (tc *TokenCache) refresh(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {tc.clientID},
		"client_secret": {tc.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tc.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: building token request: %v", domain.ErrUpstreamFailure, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := tc.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token request: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: authentication returned status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("%w: decoding token response: %v", domain.ErrUpstreamFailure, err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("%w: authentication returned empty token", domain.ErrUpstreamFailure)
	}

	expiry := tc.clock.Now().Add(time.Duration(tr.ExpiresIn)*time.Second - expiryMargin)

	tc.mu.Lock()
	tc.token = tr.AccessToken
	tc.expiry = expiry
	tc.mu.Unlock()

	return tr.AccessToken, nil
}
