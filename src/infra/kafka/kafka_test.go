package kafka_test

import (
	"fmt"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"movieapi/src/infra/kafka"
)

var _ = Describe("KafkaClient", func() {
	var (
		producer *mocks.SyncProducer
		client   *kafka.KafkaClient
	)

	BeforeEach(func() {
		producer = mocks.NewSyncProducer(GinkgoT(), nil)
		client = kafka.NewKafkaClientWithProducer(producer)
	})

	AfterEach(func() {
		Expect(client.Close()).To(Succeed())
	})

	It("sends key, value and headers to the topic", func() {
		// ARRANGE
		producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			if msg.Topic != "directors" {
				return fmt.Errorf("unexpected topic %q", msg.Topic)
			}

			key, _ := msg.Key.Encode()
			if string(key) != "director-1" {
				return fmt.Errorf("unexpected key %q", key)
			}

			if len(msg.Headers) != 1 || string(msg.Headers[0].Key) != "event_type" || string(msg.Headers[0].Value) != "director.created" {
				return fmt.Errorf("unexpected headers %v", msg.Headers)
			}
			return nil
		})

		// ACT
		err := client.Producer([]kafka.Message{{
			Key:     "director-1",
			Value:   []byte(`{"name":"Nolan"}`),
			Headers: map[string]string{"event_type": "director.created"},
		}}, "directors")

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
	})

	It("skips empty batches", func() {
		Expect(client.Producer(nil, "directors")).To(Succeed())
	})

	It("fails the batch when the broker rejects it", func() {
		producer.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)

		err := client.Producer([]kafka.Message{{Key: "director-1", Value: []byte(`{}`)}}, "directors")

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(HavePrefix("batch send failed"))
	})
})
