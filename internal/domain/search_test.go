package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCriteria() SearchCriteria {
	return SearchCriteria{
		Origin:        "JFK",
		Destination:   "LHR",
		DepartureDate: "2026-10-12",
		Adults:        1,
	}
}

func TestSearchCriteria_Validate(t *testing.T) {
	intPtr := func(i int) *int { return &i }

	tests := []struct {
		name    string
		modify  func(*SearchCriteria)
		wantErr string
	}{
		{
			name:   "valid one-way criteria",
			modify: func(c *SearchCriteria) {},
		},
		{
			name: "valid round trip with all fields",
			modify: func(c *SearchCriteria) {
				c.ReturnDate = "2026-10-19"
				c.Children = 2
				c.TravelClass = "BUSINESS"
				c.MaxPrice = intPtr(800)
				c.MaxResults = 100
			},
		},
		{
			name:    "missing origin",
			modify:  func(c *SearchCriteria) { c.Origin = "" },
			wantErr: "origin is required",
		},
		{
			name:    "lowercase origin rejected",
			modify:  func(c *SearchCriteria) { c.Origin = "jfk" },
			wantErr: "origin must be a valid 3-letter IATA code",
		},
		{
			name:    "origin too long",
			modify:  func(c *SearchCriteria) { c.Origin = "JFKX" },
			wantErr: "origin must be a valid 3-letter IATA code",
		},
		{
			name:    "missing destination",
			modify:  func(c *SearchCriteria) { c.Destination = "" },
			wantErr: "destination is required",
		},
		{
			name:    "same origin and destination",
			modify:  func(c *SearchCriteria) { c.Destination = "JFK" },
			wantErr: "origin and destination must be different",
		},
		{
			name:    "missing departure date",
			modify:  func(c *SearchCriteria) { c.DepartureDate = "" },
			wantErr: "departureDate is required",
		},
		{
			name:    "wrong departure date format",
			modify:  func(c *SearchCriteria) { c.DepartureDate = "12/10/2026" },
			wantErr: "departureDate must be in YYYY-MM-DD format",
		},
		{
			name:    "impossible departure date",
			modify:  func(c *SearchCriteria) { c.DepartureDate = "2026-02-30" },
			wantErr: "departureDate is not a valid date",
		},
		{
			name: "return before departure",
			modify: func(c *SearchCriteria) {
				c.ReturnDate = "2026-10-01"
			},
			wantErr: "returnDate must not be before departureDate",
		},
		{
			name:    "zero adults",
			modify:  func(c *SearchCriteria) { c.Adults = 0 },
			wantErr: "adults must be at least 1",
		},
		{
			name:    "too many adults",
			modify:  func(c *SearchCriteria) { c.Adults = 10 },
			wantErr: "adults cannot exceed 9",
		},
		{
			name:    "negative children",
			modify:  func(c *SearchCriteria) { c.Children = -1 },
			wantErr: "children cannot be negative",
		},
		{
			name:    "too many children",
			modify:  func(c *SearchCriteria) { c.Children = 9 },
			wantErr: "children cannot exceed 8",
		},
		{
			name:    "unknown travel class",
			modify:  func(c *SearchCriteria) { c.TravelClass = "COACH" },
			wantErr: "travelClass must be one of",
		},
		{
			name:    "negative max price",
			modify:  func(c *SearchCriteria) { c.MaxPrice = intPtr(-1) },
			wantErr: "maxPrice cannot be negative",
		},
		{
			name:    "max results above cap",
			modify:  func(c *SearchCriteria) { c.MaxResults = 251 },
			wantErr: "max must be between 0 and 250",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCriteria()
			tt.modify(&c)

			err := c.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSearchCriteria_SetDefaults(t *testing.T) {
	t.Run("fills absent fields", func(t *testing.T) {
		c := SearchCriteria{
			Origin:        "jfk",
			Destination:   "lhr",
			DepartureDate: "2026-10-12",
			TravelClass:   "economy",
		}

		c.SetDefaults()

		assert.Equal(t, "JFK", c.Origin)
		assert.Equal(t, "LHR", c.Destination)
		assert.Equal(t, "ECONOMY", c.TravelClass)
		assert.Equal(t, 1, c.Adults)
		assert.Equal(t, 50, c.MaxResults)
	})

	t.Run("preserves explicit values", func(t *testing.T) {
		c := validCriteria()
		c.Adults = 3
		c.MaxResults = 20

		c.SetDefaults()

		assert.Equal(t, 3, c.Adults)
		assert.Equal(t, 20, c.MaxResults)
	})
}

func TestSearchCriteria_Key(t *testing.T) {
	nonstop := true

	t.Run("identical criteria share a key", func(t *testing.T) {
		a := validCriteria()
		b := validCriteria()
		assert.Equal(t, a.Key(), b.Key())
	})

	t.Run("differs per field", func(t *testing.T) {
		base := validCriteria()

		changed := base
		changed.Destination = "CDG"
		assert.NotEqual(t, base.Key(), changed.Key())

		changed = base
		changed.Adults = 2
		assert.NotEqual(t, base.Key(), changed.Key())

		changed = base
		changed.NonStop = &nonstop
		assert.NotEqual(t, base.Key(), changed.Key())
	})

	t.Run("nonstop false matches absent", func(t *testing.T) {
		a := validCriteria()
		notNonstop := false
		b := validCriteria()
		b.NonStop = &notNonstop
		assert.Equal(t, a.Key(), b.Key())
	})
}
