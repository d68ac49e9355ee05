package kafka

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

type KafkaClient struct {
	producer sarama.SyncProducer
	brokers  []string
}

type Message struct {
	Key     string
	Value   []byte
	Headers map[string]string

	internal *sarama.ConsumerMessage
}

func NewKafkaClient(brokers string) (*KafkaClient, error) {
	brokerList := strings.Split(brokers, ",")

	producer, err := sarama.NewSyncProducer(brokerList, newProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	log.Printf("Kafka producer initialized for brokers: %s", brokers)

	return &KafkaClient{
		producer: producer,
		brokers:  brokerList,
	}, nil
}

// NewKafkaClientWithProducer wraps an already built producer.
func NewKafkaClientWithProducer(producer sarama.SyncProducer) *KafkaClient {
	return &KafkaClient{producer: producer}
}

func newProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V2_8_0_0

	// Eventos de escrita são poucos e pequenos: prioriza durabilidade.
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1
	config.Producer.Retry.Max = 3
	config.Producer.Retry.Backoff = 100 * time.Millisecond
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1024 * 1024
	config.Producer.Timeout = 5 * time.Second

	return config
}

func (k *KafkaClient) Producer(messages []Message, topic string) error {
	if len(messages) == 0 {
		return nil
	}

	kafkaMessages := make([]*sarama.ProducerMessage, len(messages))
	for i, msg := range messages {
		headers := make([]sarama.RecordHeader, 0, len(msg.Headers))
		for key, value := range msg.Headers {
			headers = append(headers, sarama.RecordHeader{Key: []byte(key), Value: []byte(value)})
		}

		kafkaMessages[i] = &sarama.ProducerMessage{
			Topic:   topic,
			Key:     sarama.StringEncoder(msg.Key),
			Value:   sarama.ByteEncoder(msg.Value),
			Headers: headers,
		}
	}

	err := k.producer.SendMessages(kafkaMessages)
	if err == nil {
		return nil
	}

	var producerErrors sarama.ProducerErrors
	if errors.As(err, &producerErrors) {
		for _, pe := range producerErrors {
			log.Printf("  - message key %v failed: %v", pe.Msg.Key, pe.Err)
		}
		return fmt.Errorf("batch send failed: %d/%d messages failed", len(producerErrors), len(messages))
	}

	return fmt.Errorf("batch send failed: %w", err)
}

func (k *KafkaClient) Close() error {
	if err := k.producer.Close(); err != nil {
		return fmt.Errorf("failed to close producer: %w", err)
	}
	return nil
}
