package query

import (
	"listing-service/internal/core/domain"
)

// Compile turns a filter request into a query descriptor. Absent bounds
// impose no constraint; bedrooms/bathrooms are "at least N" filters.
// Amenities are echoed in the response meta but not compiled; no upstream
// feed exposes them in a filterable way.
func Compile(filters domain.SearchFilters) Descriptor {
	var desc Descriptor

	if filters.City != "" {
		desc.Predicates = append(desc.Predicates, Predicate{FieldCity, OpContains, filters.City})
	}
	if filters.PriceMin != nil {
		desc.Predicates = append(desc.Predicates, Predicate{FieldPrice, OpGTE, *filters.PriceMin})
	}
	if filters.PriceMax != nil {
		desc.Predicates = append(desc.Predicates, Predicate{FieldPrice, OpLTE, *filters.PriceMax})
	}
	if filters.Bedrooms != nil {
		desc.Predicates = append(desc.Predicates, Predicate{FieldBedrooms, OpGTE, *filters.Bedrooms})
	}
	if filters.Bathrooms != nil {
		desc.Predicates = append(desc.Predicates, Predicate{FieldBathrooms, OpGTE, *filters.Bathrooms})
	}
	if filters.AreaMin != nil {
		desc.Predicates = append(desc.Predicates, Predicate{FieldArea, OpGTE, *filters.AreaMin})
	}
	if filters.AreaMax != nil {
		desc.Predicates = append(desc.Predicates, Predicate{FieldArea, OpLTE, *filters.AreaMax})
	}
	if filters.PropertyType != "" && filters.PropertyType.Valid() {
		desc.Predicates = append(desc.Predicates, Predicate{FieldType, OpEquals, string(filters.PropertyType)})
	}

	desc.Order = compileOrder(filters.Sort)

	page, limit := NormalizePaging(filters.Page, filters.Limit)
	desc.Skip = (page - 1) * limit
	desc.Take = limit

	return desc
}

// compileOrder maps the sort directive to an order spec. "relevance" maps
// to nil on purpose: the storage default order, documented as arbitrary.
func compileOrder(sort domain.SortOrder) *OrderSpec {
	switch sort {
	case domain.SortPriceAsc:
		return &OrderSpec{Field: FieldPrice}
	case domain.SortPriceDesc:
		return &OrderSpec{Field: FieldPrice, Descending: true}
	case domain.SortRelevance:
		return nil
	default:
		// date, and anything unrecognized
		return &OrderSpec{Field: FieldCreatedAt, Descending: true}
	}
}

// NormalizePaging coerces page/limit to their defaults and caps the page
// size at MaxLimit.
func NormalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = domain.DefaultPage
	}
	if limit < 1 {
		limit = domain.DefaultLimit
	}
	if limit > domain.MaxLimit {
		limit = domain.MaxLimit
	}
	return page, limit
}
