package usecase

import (
	"context"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

// IngestListingsUseCase stores a batch of raw feed records. Records
// missing the required fields are skipped, not fatal: a feed batch is the
// one place where rejecting everything over one bad record would lose
// good data.
type IngestListingsUseCase struct {
	storage  port.ListingStoragePort
	reporter port.IngestReporterPort
}

func NewIngestListingsUseCase(storage port.ListingStoragePort, reporter port.IngestReporterPort) *IngestListingsUseCase {
	return &IngestListingsUseCase{storage: storage, reporter: reporter}
}

func (uc *IngestListingsUseCase) Execute(ctx context.Context, batchID uuid.UUID, records []domain.RawRecord) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":     "IngestListings",
		"batch_id":     batchID.String(),
		"record_count": len(records),
	})

	ucLogger.Info("Use case started: ingesting feed batch", nil)

	valid := make([]domain.RawRecord, 0, len(records))
	skipped := 0
	for _, rec := range records {
		if err := rec.ValidateRequired(); err != nil {
			ucLogger.Warn("Skipping malformed feed record", port.Fields{
				"record_id": rec.ID,
				"source":    rec.Source,
				"error":     err.Error(),
			})
			skipped++
			continue
		}
		valid = append(valid, rec)
	}

	stats, err := uc.storage.BatchUpsert(ctx, valid)
	if err != nil {
		ucLogger.Error("Storage returned an error during batch upsert", err, nil)
		return fmt.Errorf("failed to ingest %d feed records: %w", len(valid), err)
	}
	stats.Skipped += skipped

	ucLogger.Info("Batch upsert completed", port.Fields{
		"created": stats.Created,
		"updated": stats.Updated,
		"skipped": stats.Skipped,
	})

	if uc.reporter != nil {
		if err := uc.reporter.ReportIngest(ctx, batchID, stats); err != nil {
			// The records are already saved; failing the batch here would
			// only cause them to be re-delivered and re-saved.
			ucLogger.Error("Failed to report ingest results", err, nil)
		}
	}

	ucLogger.Info("Use case finished", nil)
	return nil
}
