package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

type IngestListingsUseCase interface {
	Execute(ctx context.Context, batchID uuid.UUID, records []domain.RawRecord) error
}
