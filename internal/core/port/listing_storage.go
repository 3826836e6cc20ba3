package port

import (
	"context"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/query"
)

// ListingStoragePort is the queryable collection of raw upstream records.
type ListingStoragePort interface {
	// Query executes the descriptor and returns the matching page of raw
	// records plus the total match count. Count and page are two logically
	// independent reads: no snapshot consistency is promised, and none is
	// provided.
	Query(ctx context.Context, desc query.Descriptor) ([]domain.RawRecord, int, error)

	// GetByID returns the raw record for one listing id, or
	// *domain.NotFoundError when no such listing exists.
	GetByID(ctx context.Context, id string) (*domain.RawRecord, error)

	// BatchUpsert inserts or refreshes raw feed records keyed by
	// (source, id) and reports how many of each happened.
	BatchUpsert(ctx context.Context, records []domain.RawRecord) (*domain.IngestStats, error)
}
