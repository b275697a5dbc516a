package domain

// SortOption defines the available sort orders for offer results.
type SortOption string

// Available sort options.
const (
	// SortRelevant preserves the order the offers were received in (default)
	SortRelevant SortOption = "relevant"

	// SortPriceLow sorts by total price ascending (cheapest first)
	SortPriceLow SortOption = "price-low"

	// SortPriceHigh sorts by total price descending (most expensive first)
	SortPriceHigh SortOption = "price-high"

	// SortDuration sorts by outbound duration ascending (shortest first)
	SortDuration SortOption = "duration"
)

// IsValid checks if the sort option is a valid value.
func (s SortOption) IsValid() bool {
	switch s {
	case SortRelevant, SortPriceLow, SortPriceHigh, SortDuration:
		return true
	default:
		return false
	}
}

// ParseSortOption converts a string to a SortOption.
// Returns SortRelevant if the string is empty or invalid.
func ParseSortOption(s string) SortOption {
	option := SortOption(s)
	if option.IsValid() {
		return option
	}
	return SortRelevant
}

// FilterSpec defines optional constraints to apply to offer results.
// Every field is independently optional; an absent field imposes no
// constraint, and all present constraints combine with logical AND.
type FilterSpec struct {
	// MinPrice keeps only offers with total price >= this amount (inclusive)
	MinPrice *float64 `json:"minPrice,omitempty"`

	// MaxPrice keeps only offers with total price <= this amount (inclusive)
	MaxPrice *float64 `json:"maxPrice,omitempty"`

	// Stops is the set of allowed outbound stop counts, e.g. [0, 1].
	// Empty means any stop count is allowed.
	Stops []int `json:"stops,omitempty"`

	// Airlines keeps offers carrying at least one of these validating
	// airline codes (OR semantics). Empty means no airline constraint.
	Airlines []string `json:"airlines,omitempty"`

	// DepartureHours constrains the local departure hour of the outbound
	// itinerary's first segment
	DepartureHours *HourRange `json:"departureHours,omitempty"`

	// ArrivalHours constrains the local arrival hour of the outbound
	// itinerary's last segment
	ArrivalHours *HourRange `json:"arrivalHours,omitempty"`

	// MaxDurationMinutes keeps only offers whose outbound itinerary lasts at
	// most this many minutes
	MaxDurationMinutes *int `json:"maxDurationMinutes,omitempty"`
}

// IsEmpty reports whether the spec imposes no constraint at all.
func (f *FilterSpec) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.MinPrice == nil && f.MaxPrice == nil &&
		len(f.Stops) == 0 && len(f.Airlines) == 0 &&
		f.DepartureHours == nil && f.ArrivalHours == nil &&
		f.MaxDurationMinutes == nil
}

// HourRange is an inclusive hour-of-day window, evaluated on the local
// wall-clock hour of a timestamp.
type HourRange struct {
	// From is the first allowed hour (0-23, inclusive)
	From int `json:"from"`

	// To is the last allowed hour (0-23, inclusive)
	To int `json:"to"`
}

// IsValid checks that both bounds are hours of a day and ordered.
func (hr *HourRange) IsValid() bool {
	if hr == nil {
		return true
	}
	return hr.From >= 0 && hr.From <= 23 && hr.To >= 0 && hr.To <= 23 && hr.From <= hr.To
}

// Contains reports whether the given hour falls inside the window.
func (hr *HourRange) Contains(hour int) bool {
	if hr == nil {
		return true
	}
	return hour >= hr.From && hour <= hr.To
}
