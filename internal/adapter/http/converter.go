package http

import (
	"github.com/mthtitumir/spotfly/internal/domain"
	"github.com/mthtitumir/spotfly/internal/usecase"
)

// ToDomainCriteria converts a SearchFlightsRequest to domain.SearchCriteria.
// Defaulting happens in the use case; this is a straight field mapping.
func ToDomainCriteria(req *SearchFlightsRequest) domain.SearchCriteria {
	return domain.SearchCriteria{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.Adults,
		Children:      req.Children,
		TravelClass:   req.TravelClass,
		NonStop:       req.NonStop,
		MaxPrice:      req.MaxPrice,
		MaxResults:    req.MaxResults,
	}
}

// ToDomainFilters converts a FilterDTO to domain.FilterSpec.
func ToDomainFilters(dto *FilterDTO) *domain.FilterSpec {
	if dto == nil {
		return nil
	}

	spec := &domain.FilterSpec{
		MinPrice:           dto.MinPrice,
		MaxPrice:           dto.MaxPrice,
		Stops:              dto.Stops,
		Airlines:           dto.Airlines,
		MaxDurationMinutes: dto.MaxDurationMinutes,
	}

	if dto.DepartureHours != nil {
		spec.DepartureHours = &domain.HourRange{From: dto.DepartureHours.From, To: dto.DepartureHours.To}
	}
	if dto.ArrivalHours != nil {
		spec.ArrivalHours = &domain.HourRange{From: dto.ArrivalHours.From, To: dto.ArrivalHours.To}
	}

	return spec
}

// ToSearchOptions converts request fields to usecase.SearchOptions. The
// client ID comes from the request header, not the body.
func ToSearchOptions(req *SearchFlightsRequest, clientID string) usecase.SearchOptions {
	return usecase.SearchOptions{
		Filters:              ToDomainFilters(req.Filters),
		SortBy:               domain.ParseSortOption(req.SortBy),
		FeaturedCount:        req.FeaturedCount,
		IncludeDailyAverages: req.IncludeDailyAverages,
		ClientID:             clientID,
	}
}
