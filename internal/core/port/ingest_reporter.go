package port

import (
	"context"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

// IngestReporterPort publishes the outcome of a processed feed batch.
type IngestReporterPort interface {
	ReportIngest(ctx context.Context, batchID uuid.UUID, stats *domain.IngestStats) error
}
