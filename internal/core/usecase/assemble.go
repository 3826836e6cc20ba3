package usecase

import (
	"fmt"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/normalize"
	"listing-service/internal/core/query"
)

// assembleResult normalizes the raw page in encounter order and wraps it
// with paging metadata. It does not re-sort: ordering is whatever storage
// returned. One malformed record aborts the whole page; no partial
// results are ever returned.
func assembleResult(n *normalize.Normalizer, raws []domain.RawRecord, total int, filters domain.SearchFilters) (*domain.SearchResult, error) {
	listings := make([]domain.Listing, 0, len(raws))
	for _, raw := range raws {
		listing, err := n.Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("normalizing record %q: %w", raw.ID, err)
		}
		listings = append(listings, listing)
	}

	page, limit := query.NormalizePaging(filters.Page, filters.Limit)
	filters.Page = page
	filters.Limit = limit

	return &domain.SearchResult{
		Listings:       listings,
		TotalCount:     total,
		Page:           page,
		PerPage:        limit,
		AppliedFilters: filters,
	}, nil
}
