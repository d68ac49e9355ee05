package fakes

import (
	"context"
	"sync"

	"movieapi/src/infra/kafka"
	"movieapi/src/services/events"
)

// EventPublisher records every event handed to it.
type EventPublisher struct {
	mu     sync.Mutex
	Events []events.DomainEventWithMetadata
	Err    error
}

func (p *EventPublisher) PublishSingleEvent(ctx context.Context, event events.DomainEventWithMetadata) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, event)
	return nil
}

func (p *EventPublisher) EventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, 0, len(p.Events))
	for _, event := range p.Events {
		types = append(types, event.EventType)
	}
	return types
}

// MessageProducer records the batches sent to each topic.
type MessageProducer struct {
	mu       sync.Mutex
	Messages map[string][]kafka.Message
	Err      error
}

func (p *MessageProducer) Producer(messages []kafka.Message, topic string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	if p.Messages == nil {
		p.Messages = make(map[string][]kafka.Message)
	}
	p.Messages[topic] = append(p.Messages[topic], messages...)
	return nil
}
