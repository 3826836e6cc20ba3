package domain

// SortOrder names the supported orderings of a search result page.
type SortOrder string

const (
	SortRelevance SortOrder = "relevance"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortDate      SortOrder = "date"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	// MaxLimit caps the page size so a single request cannot drain the
	// storage collaborator.
	MaxLimit = 100
)

// SearchFilters is the filter request as produced by the client-side
// filter store. Absent numeric bounds impose no constraint. The JSON tags
// shape the echo inside the response meta.
type SearchFilters struct {
	City         string       `json:"city,omitempty"`
	PriceMin     *float64     `json:"priceMin,omitempty"`
	PriceMax     *float64     `json:"priceMax,omitempty"`
	Bedrooms     *int         `json:"bedrooms,omitempty"`
	Bathrooms    *int         `json:"bathrooms,omitempty"`
	AreaMin      *float64     `json:"areaMin,omitempty"`
	AreaMax      *float64     `json:"areaMax,omitempty"`
	PropertyType PropertyType `json:"propertyType,omitempty"`
	Amenities    []string     `json:"amenities,omitempty"`
	Page         int          `json:"page"`
	Limit        int          `json:"limit"`
	Sort         SortOrder    `json:"sort,omitempty"`
}
