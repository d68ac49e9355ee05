package debezium_test

import (
	"context"
	"errors"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"movieapi/src/infra/debezium"
	"movieapi/src/infra/kafka"
)

type stubConsumer struct {
	messages []kafka.Message
	closed   bool
}

func (s *stubConsumer) Consume(ctx context.Context, handler kafka.Handler, topic string) error {
	return handler(ctx, s.messages)
}

func (s *stubConsumer) Close() error {
	s.closed = true
	return nil
}

var _ = Describe("CDCClient", func() {
	var (
		consumer *stubConsumer
		client   *debezium.CDCClient
		received []*debezium.CDCEvent
	)

	BeforeEach(func() {
		consumer = &stubConsumer{}
		serializer := &debezium.CDCSerializer{IncludeTables: []string{"directors"}}
		client = debezium.NewCDCClient(slog.New(slog.NewTextHandler(GinkgoWriter, nil)), "cdc.public.directors", consumer, serializer)
		received = nil
	})

	handler := func(ctx context.Context, events []*debezium.CDCEvent) error {
		received = append(received, events...)
		return nil
	}

	It("drops bad and unmonitored messages and hands the rest over in one batch", func() {
		// ARRANGE
		consumer.messages = []kafka.Message{
			{Key: "1", Value: []byte(`{"op": "c", "after": {"id": "d-1"}, "source": {"table": "directors"}}`)},
			{Key: "2", Value: []byte(`not json`)},
			{Key: "3", Value: []byte(`{"op": "c", "after": {"id": "m-1"}, "source": {"table": "movies"}}`)},
			{Key: "4", Value: []byte(`{"op": "u", "after": {"id": "d-2"}, "source": {"table": "directors"}}`)},
		}

		// ACT
		err := client.ConsumeCDCEventsBatch(context.Background(), handler)

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(received).To(HaveLen(2))
		Expect(idOf(received[0])).To(Equal("d-1"))
		Expect(idOf(received[1])).To(Equal("d-2"))
	})

	It("returns the handler error so the batch is retried", func() {
		consumer.messages = []kafka.Message{
			{Value: []byte(`{"op": "c", "after": {"id": "d-1"}, "source": {"table": "directors"}}`)},
		}

		err := client.ConsumeCDCEventsBatch(context.Background(), func(context.Context, []*debezium.CDCEvent) error {
			return errors.New("redis down")
		})

		Expect(err).To(MatchError(ContainSubstring("redis down")))
	})

	It("closes the consumer", func() {
		Expect(client.Close()).To(Succeed())
		Expect(consumer.closed).To(BeTrue())
	})
})

func idOf(event *debezium.CDCEvent) string {
	id, _ := event.StringField("id")
	return id
}
