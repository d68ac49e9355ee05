package kafka

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

const (
	defaultBatchTimeout = 2 * time.Second
	defaultRetryBackoff = time.Second
	maxRetryBackoff     = 30 * time.Second
)

// Handler receives a batch of messages from a single partition. Returning an
// error makes the same batch be handed again, with backoff, before anything
// after it on the partition is read.
type Handler func(ctx context.Context, messages []Message) error

type KafkaConsumer struct {
	group     sarama.ConsumerGroup
	batchSize int
}

func NewKafkaConsumer(brokers string, groupID string, batchSize int) (*KafkaConsumer, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	group, err := sarama.NewConsumerGroup(strings.Split(brokers, ","), groupID, newConsumerConfig(batchSize))
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	log.Printf("Kafka consumer group %s initialized with batch size: %d", groupID, batchSize)

	return NewKafkaConsumerWithGroup(group, batchSize), nil
}

func NewKafkaConsumerWithGroup(group sarama.ConsumerGroup, batchSize int) *KafkaConsumer {
	return &KafkaConsumer{group: group, batchSize: batchSize}
}

func newConsumerConfig(batchSize int) *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V2_8_0_0

	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Group.Session.Timeout = 30 * time.Second
	config.Consumer.Group.Heartbeat.Interval = 10 * time.Second
	config.Consumer.MaxProcessingTime = 30 * time.Second
	config.Consumer.MaxWaitTime = 250 * time.Millisecond
	config.ChannelBufferSize = batchSize * 2

	return config
}

// Consume blocks until ctx is cancelled or the group is closed, rejoining the
// group after every rebalance.
func (k *KafkaConsumer) Consume(ctx context.Context, handler Handler, topic string) error {
	groupHandler := &consumerGroupHandler{
		handler:      handler,
		batchSize:    k.batchSize,
		batchTimeout: defaultBatchTimeout,
		retryBackoff: defaultRetryBackoff,
	}

	for {
		err := k.group.Consume(ctx, []string{topic}, groupHandler)
		if errors.Is(err, sarama.ErrClosedConsumerGroup) {
			return nil
		}
		if ctx.Err() != nil {
			log.Println("Kafka consumer context cancelled")
			return nil
		}
		if err != nil {
			log.Printf("Error consuming from topic %s: %v", topic, err)

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(5 * time.Second):
			}
		}
	}
}

func (k *KafkaConsumer) Close() error {
	if err := k.group.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

// consumerGroupHandler implementa sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	handler      Handler
	batchSize    int
	batchTimeout time.Duration
	retryBackoff time.Duration
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	messages := make([]Message, 0, h.batchSize)
	timer := time.NewTimer(h.batchTimeout)
	defer timer.Stop()

	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.processBatch(session, messages)
				return nil
			}

			messages = append(messages, newMessage(message))
			if len(messages) >= h.batchSize {
				if !h.processBatch(session, messages) {
					return nil
				}
				messages = messages[:0]
				timer.Reset(h.batchTimeout)
			}

		case <-timer.C:
			if !h.processBatch(session, messages) {
				return nil
			}
			messages = messages[:0]
			timer.Reset(h.batchTimeout)

		case <-session.Context().Done():
			return nil
		}
	}
}

func newMessage(message *sarama.ConsumerMessage) Message {
	headers := make(map[string]string, len(message.Headers))
	for _, header := range message.Headers {
		if header != nil {
			headers[string(header.Key)] = string(header.Value)
		}
	}

	return Message{
		Key:      string(message.Key),
		Value:    message.Value,
		Headers:  headers,
		internal: message,
	}
}

// processBatch retries the batch until the handler accepts it and only then
// marks it. Offsets are committed up to the highest mark, so moving on to the
// next batch after a failure would skip this one for good. Returns false when
// the session ended before the batch went through.
func (h *consumerGroupHandler) processBatch(session sarama.ConsumerGroupSession, messages []Message) bool {
	if len(messages) == 0 {
		return true
	}

	backoff := h.retryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	for {
		err := h.handler(session.Context(), messages)
		if err == nil {
			break
		}

		log.Printf("Handler error for batch of %d messages, retrying in %s: %v", len(messages), backoff, err)

		select {
		case <-session.Context().Done():
			// Sem MarkMessage: o lote volta na próxima sessão.
			return false
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxRetryBackoff)
	}

	for _, msg := range messages {
		if msg.internal != nil {
			session.MarkMessage(msg.internal, "")
		}
	}
	return true
}
