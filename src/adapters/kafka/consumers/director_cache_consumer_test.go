package consumers_test

import (
	"context"
	"errors"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"movieapi/src/adapters/kafka/consumers"
	"movieapi/src/infra/debezium"
)

type recordingInvalidator struct {
	calls [][]string
	err   error
}

func (r *recordingInvalidator) InvalidateDirectors(ctx context.Context, ids []string) error {
	r.calls = append(r.calls, ids)
	return r.err
}

type batchSource struct {
	events []*debezium.CDCEvent
	closed bool
}

func (s *batchSource) ConsumeCDCEventsBatch(ctx context.Context, handler debezium.CDCBatchEventHandler) error {
	return handler(ctx, s.events)
}

func (s *batchSource) Close() error {
	s.closed = true
	return nil
}

func directorEvent(op string, id string) *debezium.CDCEvent {
	row := map[string]interface{}{"id": id, "name": "Nolan"}
	event := &debezium.CDCEvent{Operation: op, Source: debezium.CDCSource{Table: "directors"}}
	if op == "d" {
		event.Before = row
	} else {
		event.After = row
	}
	return event
}

var _ = Describe("DirectorCacheConsumer", func() {
	var (
		invalidator *recordingInvalidator
		source      *batchSource
		consumer    *consumers.DirectorCacheConsumer
	)

	BeforeEach(func() {
		invalidator = &recordingInvalidator{}
		source = &batchSource{}
		consumer = consumers.NewDirectorCacheConsumer(slog.New(slog.NewTextHandler(GinkgoWriter, nil)), source, invalidator)
	})

	It("invalidates every touched director once", func() {
		// ARRANGE
		source.events = []*debezium.CDCEvent{
			directorEvent("u", "d-2"),
			directorEvent("c", "d-1"),
			directorEvent("u", "d-2"),
			directorEvent("d", "d-3"),
		}

		// ACT
		err := consumer.Start(context.Background())

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(invalidator.calls).To(Equal([][]string{{"d-1", "d-2", "d-3"}}))
	})

	It("skips events without an id", func() {
		event := &debezium.CDCEvent{Operation: "c", After: map[string]interface{}{"name": "Nolan"}, Source: debezium.CDCSource{Table: "directors"}}

		Expect(consumer.HandleCDCEvents(context.Background(), []*debezium.CDCEvent{event})).To(Succeed())
		Expect(invalidator.calls).To(BeEmpty())
	})

	It("returns the invalidation error", func() {
		invalidator.err = errors.New("i/o timeout")

		err := consumer.HandleCDCEvents(context.Background(), []*debezium.CDCEvent{directorEvent("c", "d-1")})

		Expect(err).To(MatchError(invalidator.err))
	})

	It("closes the CDC source", func() {
		Expect(consumer.Close()).To(Succeed())
		Expect(source.closed).To(BeTrue())
	})
})
