package domain

// SearchResponse is the full result of a flight search: the offer list after
// filtering and sorting, plus the derived views presentation renders around
// it. Facets and featured picks are always computed over the full unfiltered
// offer set so that filter UI bounds and quick picks stay stable while the
// user narrows the list.
type SearchResponse struct {
	// Criteria echoes the search parameters after defaulting
	Criteria SearchCriteria `json:"criteria"`

	// Meta describes the search execution
	Meta SearchMeta `json:"meta"`

	// Offers is the filtered, sorted offer list
	Offers []FlightOffer `json:"offers"`

	// Facets summarizes the full offer set for filter UI bounds
	Facets Facets `json:"facets"`

	// Featured holds the four top-K quick-pick rankings
	Featured Featured `json:"featured"`

	// PriceSeries maps each offer in the filtered view to one point,
	// in input order
	PriceSeries []PricePoint `json:"priceSeries"`

	// DailyPrices is the optional per-calendar-day mean-price view
	DailyPrices []DailyPrice `json:"dailyPrices,omitempty"`

	// Carriers maps airline codes appearing in the offers to display
	// names, when the provider supplies a dictionary
	Carriers map[string]string `json:"carriers,omitempty"`
}

// SearchMeta contains metadata about the search execution.
type SearchMeta struct {
	// Count is the total number of offers the provider returned
	Count int `json:"count"`

	// FilteredCount is the number of offers after filtering
	FilteredCount int `json:"filteredCount"`

	// SearchTimeMs is the total search duration in milliseconds
	SearchTimeMs int64 `json:"searchTimeMs"`
}

// Facets are summary values derived from a full offer set, used to drive
// filter UI bounds.
type Facets struct {
	// Airlines is the deduplicated, lexicographically sorted union of all
	// validating airline codes
	Airlines []string `json:"airlines"`

	// PriceRange is [floor(min total), ceil(max total)] over all offers,
	// or [0, 1000] when the set is empty
	PriceRange [2]float64 `json:"priceRange"`
}

// Featured holds the four independent top-K rankings computed over the full
// unfiltered offer set.
type Featured struct {
	Cheapest  []FlightOffer `json:"cheapest"`
	Quickest  []FlightOffer `json:"quickest"`
	Nonstop   []FlightOffer `json:"nonstop"`
	BestValue []FlightOffer `json:"bestValue"`
}

// PricePoint is one offer projected onto the price chart. Fields come from
// the outbound itinerary's first and last segments; no aggregation is applied.
type PricePoint struct {
	ID            string  `json:"id"`
	Price         float64 `json:"price"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	Airline       string  `json:"airline"`
	Stops         int     `json:"stops"`
	Duration      string  `json:"duration"`
	Seats         int     `json:"seats"`
}

// DailyPrice is the mean offer price for one departure calendar date.
type DailyPrice struct {
	// Date is the departure date in YYYY-MM-DD form
	Date string `json:"date"`

	// Price is the rounded mean total price of the offers departing that day
	Price int `json:"price"`

	// Count is the number of offers that contributed to the mean
	Count int `json:"count"`
}
