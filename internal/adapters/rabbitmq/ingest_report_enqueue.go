package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// IngestReportDTO is the message published to the ingest reports queue.
type IngestReportDTO struct {
	BatchID uuid.UUID      `json:"batch_id"`
	Results map[string]int `json:"results"`
}

type IngestReporterAdapter struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string
}

func NewIngestReporterAdapter(producer *rabbitmq_producer.Publisher, routingKey string) (*IngestReporterAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &IngestReporterAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

func (a *IngestReporterAdapter) ReportIngest(ctx context.Context, batchID uuid.UUID, stats *domain.IngestStats) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "IngestReporterAdapter",
		"routing_key": a.routingKey,
		"batch_id":    batchID.String(),
	})

	dto := IngestReportDTO{
		BatchID: batchID,
		Results: map[string]int{
			"created":         stats.Created,
			"updated":         stats.Updated,
			"skipped":         stats.Skipped,
			"total_processed": stats.Created + stats.Updated + stats.Skipped,
		},
	}

	body, _ := json.Marshal(dto)

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers:      make(amqp.Table),
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	adapterLogger.Info("Publishing ingest report for batch", port.Fields{"stats": dto.Results})
	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish report", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish report for batch %s: %w", batchID, err)
	}

	adapterLogger.Info("Successfully published report", nil)
	return nil
}
