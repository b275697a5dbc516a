package domain

import "errors"

// Sentinel errors surfaced by the service. Callers match them with errors.Is;
// context is added at the point of failure with fmt.Errorf("%w: ...").
var (
	// ErrInvalidRequest indicates the search request is missing required
	// parameters or carries invalid values.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUpstreamFailure is the single opaque condition reported when the
	// flight-data provider cannot be reached, rejects our credentials, or
	// returns an error. Callers get no partial results.
	ErrUpstreamFailure = errors.New("flight search failed")

	// ErrNotConfigured indicates the provider credentials are absent, so no
	// upstream call can be attempted.
	ErrNotConfigured = errors.New("flight provider credentials not configured")
)
