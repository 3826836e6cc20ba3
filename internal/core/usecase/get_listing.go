package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/normalize"
	"listing-service/internal/core/port"
)

type GetListingUseCase struct {
	storage    port.ListingStoragePort
	normalizer *normalize.Normalizer
}

func NewGetListingUseCase(storage port.ListingStoragePort, normalizer *normalize.Normalizer) *GetListingUseCase {
	return &GetListingUseCase{storage: storage, normalizer: normalizer}
}

func (uc *GetListingUseCase) Execute(ctx context.Context, id string) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetListing",
		"listing_id": id,
	})

	raw, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		ucLogger.Warn("Listing lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	listing, err := uc.normalizer.Normalize(*raw)
	if err != nil {
		ucLogger.Error("Failed to normalize stored record", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished", nil)
	return &listing, nil
}
