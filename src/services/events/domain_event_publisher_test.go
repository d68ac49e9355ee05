package events_test

import (
	"context"
	"errors"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"movieapi/src/domain"
	"movieapi/src/services/events"
	"movieapi/src/test_artefacts/comparer"
	"movieapi/src/test_artefacts/fakes"
)

var _ = Describe("DomainEventPublisher", func() {
	const topic = "movie-catalog.directors"

	var (
		ctx       context.Context
		producer  *fakes.MessageProducer
		publisher *events.DomainEventPublisher
	)

	BeforeEach(func() {
		ctx = context.Background()
		producer = &fakes.MessageProducer{}
		publisher = events.NewDomainEventPublisher(slog.New(slog.NewTextHandler(GinkgoWriter, nil)), producer, topic)
	})

	newEvent := func(reference string) events.DomainEventWithMetadata {
		return events.DomainEventWithMetadata{
			DomainEvent: domain.DomainEvent{
				OccurredAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
				Data: domain.DomainEventData{
					Reference: reference,
					Type:      "director",
					Properties: map[string]domain.PropertyChange{
						"name":  {New: "Nolan"},
						"movie": {New: []string{"m1"}},
					},
				},
			},
			EventID:   "event-" + reference,
			EventType: domain.EventDirectorCreated,
		}
	}

	It("keys the message by director and fills the headers", func() {
		// ACT
		err := publisher.PublishSingleEvent(ctx, newEvent("director-1"))

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(producer.Messages[topic]).To(HaveLen(1))

		message := producer.Messages[topic][0]
		Expect(message.Key).To(Equal("director-1"))
		Expect(message.Headers).To(Equal(map[string]string{
			"event_type":     domain.EventDirectorCreated,
			"source_service": "movie-catalog-api",
			"schema_version": "v1",
			"event_id":       "event-director-1",
			"entity_type":    "director",
			"fields_changed": "movie,name",
		}))
	})

	It("serializes only the domain event", func() {
		err := publisher.PublishSingleEvent(ctx, newEvent("director-1"))
		Expect(err).NotTo(HaveOccurred())

		expected := []byte(`{
			"occurred_at": "2025-01-02T03:04:05Z",
			"data": {
				"reference": "director-1",
				"type": "director",
				"properties": {
					"name": {"new": "Nolan"},
					"movie": {"new": ["m1"]}
				}
			}
		}`)
		Expect(producer.Messages[topic][0].Value).To(BeComparableTo(expected, comparer.JSONBytes()))
	})

	It("sends a batch in order", func() {
		err := publisher.PublishDomainEvents(ctx, []events.DomainEventWithMetadata{newEvent("a"), newEvent("b")})

		Expect(err).NotTo(HaveOccurred())
		Expect(producer.Messages[topic]).To(HaveLen(2))
		Expect(producer.Messages[topic][0].Key).To(Equal("a"))
		Expect(producer.Messages[topic][1].Key).To(Equal("b"))
	})

	It("does nothing for an empty batch", func() {
		Expect(publisher.PublishDomainEvents(ctx, nil)).To(Succeed())
		Expect(producer.Messages).To(BeEmpty())
	})

	It("returns the producer error with the topic", func() {
		producer.Err = errors.New("leader not available")

		err := publisher.PublishSingleEvent(ctx, newEvent("director-1"))

		Expect(err).To(MatchError(producer.Err))
		Expect(err.Error()).To(ContainSubstring(topic))
	})
})
