package rest

import (
	"time"

	"listing-service/internal/core/domain"
)

// Response envelope codes.
const (
	CodeFetchError = "FETCH_ERROR"
	CodeNotFound   = "NOT_FOUND"
)

// SuccessEnvelope is the {status, data, meta} wrapper every successful
// response uses.
type SuccessEnvelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
	Meta   *Meta       `json:"meta,omitempty"`
}

// ErrorEnvelope is the {status, message, code} wrapper for failures.
type ErrorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type Meta struct {
	Total   int                  `json:"total"`
	Page    int                  `json:"page"`
	Limit   int                  `json:"limit"`
	Filters domain.SearchFilters `json:"filters"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type LocationResponse struct {
	City        string               `json:"city"`
	State       string               `json:"state"`
	Address     string               `json:"address"`
	Coordinates *CoordinatesResponse `json:"coordinates,omitempty"`
}

type FeaturesResponse struct {
	Bedrooms  int      `json:"bedrooms"`
	Bathrooms float64  `json:"bathrooms"`
	Area      float64  `json:"area"`
	AreaUnit  string   `json:"areaUnit"`
	Type      string   `json:"type"`
	Amenities []string `json:"amenities"`
}

// ListingResponse is the canonical listing as the HTTP clients see it.
type ListingResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Currency    string           `json:"currency"`
	Location    LocationResponse `json:"location"`
	Images      []string         `json:"images"`
	Features    FeaturesResponse `json:"features"`
	Source      string           `json:"source"`
	URL         string           `json:"url"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func toListingResponse(l domain.Listing) ListingResponse {
	resp := ListingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Currency:    l.Currency,
		Location: LocationResponse{
			City:    l.Location.City,
			State:   l.Location.State,
			Address: l.Location.Address,
		},
		Images: l.Images,
		Features: FeaturesResponse{
			Bedrooms:  l.Features.Bedrooms,
			Bathrooms: l.Features.Bathrooms,
			Area:      l.Features.Area,
			AreaUnit:  l.Features.AreaUnit,
			Type:      string(l.Features.Type),
			Amenities: l.Features.Amenities,
		},
		Source:    l.Source,
		URL:       l.URL,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if c := l.Location.Coordinates; c != nil {
		resp.Location.Coordinates = &CoordinatesResponse{Lat: c.Lat, Lng: c.Lng}
	}
	return resp
}

func toSearchEnvelope(result *domain.SearchResult) SuccessEnvelope {
	data := make([]ListingResponse, 0, len(result.Listings))
	for _, l := range result.Listings {
		data = append(data, toListingResponse(l))
	}
	return SuccessEnvelope{
		Status: "success",
		Data:   data,
		Meta: &Meta{
			Total:   result.TotalCount,
			Page:    result.Page,
			Limit:   result.PerPage,
			Filters: result.AppliedFilters,
		},
	}
}
