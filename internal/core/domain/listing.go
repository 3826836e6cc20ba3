package domain

import "time"

// PropertyType is the fixed enumeration every canonical listing resolves to.
type PropertyType string

const (
	TypeApartment  PropertyType = "apartment"
	TypeHouse      PropertyType = "house"
	TypeCondo      PropertyType = "condo"
	TypeLand       PropertyType = "land"
	TypeCommercial PropertyType = "commercial"
)

func (t PropertyType) Valid() bool {
	switch t {
	case TypeApartment, TypeHouse, TypeCondo, TypeLand, TypeCommercial:
		return true
	}
	return false
}

// NoExternalLink is the sentinel URL meaning "no upstream page exists,
// use the internal detail view".
const NoExternalLink = "#"

type Coordinates struct {
	Lat float64
	Lng float64
}

type Location struct {
	City    string
	State   string
	Address string
	// Coordinates is only set when the upstream record carried exact lat/lng.
	Coordinates *Coordinates
}

type Features struct {
	Bedrooms  int
	Bathrooms float64
	Area      float64
	AreaUnit  string
	Type      PropertyType
	Amenities []string
}

// Listing is the canonical representation of a property record. It is
// reconstructed from the raw upstream record on every fetch and never
// mutated in place; ID is the only field guaranteed to round-trip
// identically between storage and presentation.
type Listing struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Currency    string
	Location    Location
	Images      []string
	Features    Features
	Source      string
	URL         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SearchResult is one assembled page of canonical listings plus the
// metadata the response envelope echoes back.
type SearchResult struct {
	Listings       []Listing
	TotalCount     int
	Page           int
	PerPage        int
	AppliedFilters SearchFilters
}

// IngestStats summarizes one batch-upsert of raw feed records.
type IngestStats struct {
	Created int
	Updated int
	Skipped int
}
