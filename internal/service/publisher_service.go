package service

import (
	"context"

	"studynotes-be/internal/pkg/logger"
	"studynotes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	// Publish hands the event to the in-process bus. Failures are logged only.
	Publish(ctx context.Context, event events.Event)
}

type publisherService struct {
	topicName string
	publisher message.Publisher
	logger    logger.ILogger
}

func NewPublisherService(topicName string, publisher message.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
		logger:    log,
	}
}

func (ps *publisherService) Publish(ctx context.Context, event events.Event) {
	if ps.publisher == nil {
		return
	}

	payload, err := events.Marshal(event)
	if err != nil {
		ps.logger.Error("EVENTS", "failed to marshal event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err,
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := ps.publisher.Publish(ps.topicName, msg); err != nil {
		ps.logger.Error("EVENTS", "failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err,
		})
	}
}

type noopPublisher struct{}

// NewNoopPublisherService discards every event.
func NewNoopPublisherService() IPublisherService {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, events.Event) {}
