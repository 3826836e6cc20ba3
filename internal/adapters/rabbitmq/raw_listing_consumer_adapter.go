package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	usecases_port "listing-service/internal/core/port/usecases_port"
	"listing-service/pkg/rabbitmq/rabbitmq_common"
	"listing-service/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RawListingBatchDTO is the body of a RawListingBatchEvent message.
type RawListingBatchDTO struct {
	BatchID   uuid.UUID          `json:"batch_id"`
	Source    string             `json:"source"`
	FetchedAt string             `json:"fetched_at,omitempty"`
	Records   []domain.RawRecord `json:"records"`
}

// RawListingConsumerAdapter listens on the raw listings queue and feeds
// each validated batch into the ingest use case.
type RawListingConsumerAdapter struct {
	consumer rabbitmq_consumer.Consumer
	useCase  usecases_port.IngestListingsUseCase
	logger   port.LoggerPort
}

func NewRawListingConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	useCase usecases_port.IngestListingsUseCase,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*RawListingConsumerAdapter, error) {

	adapter := &RawListingConsumerAdapter{
		useCase: useCase,
		logger:  logger,
	}

	pkgLogger := logger.WithFields(port.Fields{"component": "rabbitmq_consumer", "consumer_tag": consumerCfg.ConsumerTag})
	consumerCfg.Logger = NewPkgLoggerBridge(pkgLogger)

	consumer, err := rabbitmq_consumer.NewDistributingConsumer(consumerCfg, adapter.messageHandler, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for raw listings: %w", err)
	}
	adapter.consumer = consumer

	return adapter, nil
}

func (a *RawListingConsumerAdapter) messageHandler(d amqp.Delivery) error {
	traceID, _ := d.Headers["x-trace-id"].(string)
	if traceID == "" {
		traceID = uuid.New().String()
	}

	msgLogger := a.logger.WithFields(port.Fields{
		"trace_id":     traceID,
		"message_id":   d.MessageId,
		"adapter_name": "RawListingConsumerAdapter",
	})

	ctx := context.Background()
	ctx = contextkeys.ContextWithLogger(ctx, msgLogger)
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)

	eventType, _ := d.Headers["event-type"].(string)
	eventVersion, _ := d.Headers["event-version"].(string)
	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		msgLogger.Error("Message failed schema validation. Rejecting.", err, nil)
		return err
	}

	var dto RawListingBatchDTO
	if err := json.Unmarshal(d.Body, &dto); err != nil {
		return fmt.Errorf("failed to unmarshal raw listing batch: %w", err)
	}

	// The source lives on the envelope; each record carries it from
	// here on so the storage key (source, id) stays complete.
	for i := range dto.Records {
		if dto.Records[i].Source == "" {
			dto.Records[i].Source = dto.Source
		}
	}

	batchLogger := msgLogger.WithFields(port.Fields{
		"batch_id":     dto.BatchID.String(),
		"source":       dto.Source,
		"record_count": len(dto.Records),
	})
	batchLogger.Info("Received raw listing batch.", nil)

	if err := a.useCase.Execute(ctx, dto.BatchID, dto.Records); err != nil {
		batchLogger.Error("Ingest failed, message will be rejected.", err, nil)
		return err
	}

	batchLogger.Info("Batch processed successfully.", nil)
	return nil
}

// Start implements EventListenerPort.
func (a *RawListingConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

// Close implements EventListenerPort.
func (a *RawListingConsumerAdapter) Close() error {
	return a.consumer.Close()
}
