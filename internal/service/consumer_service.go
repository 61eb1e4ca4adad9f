package service

import (
	"context"

	"studynotes-be/internal/pkg/logger"
	"studynotes-be/internal/pkg/mailer"
	"studynotes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventExporter forwards events off-process. *nats.Publisher satisfies it.
type EventExporter interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	exporter   EventExporter
	mailer     mailer.IEmailService
	auditLog   logger.ILogger
	logger     logger.ILogger
}

// NewConsumerService drains the event topic. exporter and mail may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	exporter EventExporter,
	mail mailer.IEmailService,
	auditLog logger.ILogger,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		exporter:   exporter,
		mailer:     mail,
		auditLog:   auditLog,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks: export and email are best effort and a
// redelivered event would only repeat the same failure.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Error("CONSUMER", "failed to unmarshal event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		return
	}

	cs.auditLog.Info("EVENT", event.Type, map[string]interface{}{
		"message_id":  msg.UUID,
		"occurred_at": event.OccurredAt,
		"data":        event.Data,
	})

	if cs.exporter != nil {
		if err := cs.exporter.Publish(ctx, event); err != nil {
			cs.logger.Warn("CONSUMER", "failed to export event", map[string]interface{}{
				"type":  event.Type,
				"error": err,
			})
		}
	}

	if event.Type == events.UserRegistered && cs.mailer != nil {
		email, _ := event.Data["email"].(string)
		name, _ := event.Data["firstName"].(string)
		if email == "" {
			return
		}
		if err := cs.mailer.SendWelcome(email, name); err != nil {
			cs.logger.Warn("CONSUMER", "failed to send welcome email", map[string]interface{}{
				"email": email,
				"error": err,
			})
		}
	}
}
