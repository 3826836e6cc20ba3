package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/normalize"
	"listing-service/internal/core/port"
	"listing-service/internal/core/query"
)

// SearchListingsUseCase runs the full search pipeline: compile the filter
// request, execute it against storage, normalize the returned raw records
// and assemble the result page.
type SearchListingsUseCase struct {
	storage    port.ListingStoragePort
	normalizer *normalize.Normalizer
}

func NewSearchListingsUseCase(storage port.ListingStoragePort, normalizer *normalize.Normalizer) *SearchListingsUseCase {
	return &SearchListingsUseCase{storage: storage, normalizer: normalizer}
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, filters domain.SearchFilters) (*domain.SearchResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchListings",
		"page":     filters.Page,
		"limit":    filters.Limit,
		"sort":     filters.Sort,
	})

	desc := query.Compile(filters)
	ucLogger.Debug("Filter request compiled", port.Fields{
		"predicates": len(desc.Predicates),
		"skip":       desc.Skip,
		"take":       desc.Take,
	})

	raws, total, err := uc.storage.Query(ctx, desc)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	result, err := assembleResult(uc.normalizer, raws, total, filters)
	if err != nil {
		ucLogger.Error("Failed to assemble result page", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Listings),
	})
	return result, nil
}
