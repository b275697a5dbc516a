// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"testing"
	"time"

	"github.com/mthtitumir/spotfly/internal/domain"
)

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", dateStr, err)
	}
	return parsed
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}

// FloatPtr returns a pointer to a float64.
// Convenience function for filter option tests.
func FloatPtr(f float64) *float64 {
	return &f
}

// IntPtr returns a pointer to an int.
// Convenience function for filter option tests.
func IntPtr(i int) *int {
	return &i
}

// Criteria returns a valid search criteria with the given origin and
// destination. Remaining fields carry typical values.
func Criteria(origin, destination string) domain.SearchCriteria {
	return domain.SearchCriteria{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: "2026-10-12",
		Adults:        1,
	}
}
