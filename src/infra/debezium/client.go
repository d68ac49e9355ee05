package debezium

import (
	"context"
	"fmt"
	"log/slog"

	"movieapi/src/infra/kafka"
)

// CDCBatchEventHandler is the function signature for handling batches of CDC events
type CDCBatchEventHandler func(ctx context.Context, events []*CDCEvent) error

// MessageConsumer is satisfied by *kafka.KafkaConsumer.
type MessageConsumer interface {
	Consume(ctx context.Context, handler kafka.Handler, topic string) error
	Close() error
}

// CDCClient implements CDC event consumption using Kafka
type CDCClient struct {
	logger     *slog.Logger
	consumer   MessageConsumer
	serializer *CDCSerializer
	topic      string
}

func NewCDCClient(logger *slog.Logger, topic string, consumer MessageConsumer, serializer *CDCSerializer) *CDCClient {
	return &CDCClient{
		logger:     logger,
		consumer:   consumer,
		serializer: serializer,
		topic:      topic,
	}
}

// ConsumeCDCEventsBatch starts consuming CDC events and calls handler for batches of valid events
func (c *CDCClient) ConsumeCDCEventsBatch(ctx context.Context, handler CDCBatchEventHandler) error {
	c.logger.Info("Starting CDC batch event consumption", "topic", c.topic)

	return c.consumer.Consume(ctx, func(ctx context.Context, messages []kafka.Message) error {
		return c.ProcessMessages(ctx, messages, handler)
	}, c.topic)
}

// ProcessMessages parses and filters a batch of Kafka messages and hands the
// valid events to handler in one call. Unparseable messages are logged and
// dropped so a single bad record can't block the partition.
func (c *CDCClient) ProcessMessages(ctx context.Context, messages []kafka.Message, handler CDCBatchEventHandler) error {
	if len(messages) == 0 {
		return nil
	}

	var validEvents []*CDCEvent
	skippedCount := 0
	errorCount := 0

	for _, msg := range messages {
		cdcEvent, err := c.serializer.ParseCDCEvent(msg.Value)
		if err != nil {
			c.logger.WarnContext(ctx, "Failed to parse CDC message",
				"error", err,
				"key", msg.Key,
				"value_length", len(msg.Value))
			errorCount++
			continue
		}

		if !c.serializer.ShouldProcessEvent(cdcEvent) {
			skippedCount++
			continue
		}

		validEvents = append(validEvents, cdcEvent)
	}

	if len(validEvents) > 0 {
		if err := handler(ctx, validEvents); err != nil {
			c.logger.ErrorContext(ctx, "CDC batch event handler failed",
				"error", err,
				"valid_events", len(validEvents))
			return fmt.Errorf("failed to handle CDC events batch: %w", err)
		}
	}

	c.logger.DebugContext(ctx, "Completed CDC messages batch processing",
		"total", len(messages),
		"processed", len(validEvents),
		"skipped", skippedCount,
		"errors", errorCount)

	return nil
}

// Close closes the CDC client
func (c *CDCClient) Close() error {
	c.logger.Info("Closing CDC client")
	return c.consumer.Close()
}
