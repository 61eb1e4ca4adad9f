package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"studynotes-be/internal/pkg/logger"
	"studynotes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExporter struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (e *fakeExporter) Publish(_ context.Context, ev events.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
	return e.err
}

func (e *fakeExporter) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.events)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *fakeMailer) SendWelcome(toEmail, firstName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, toEmail+"/"+firstName)
	return nil
}

func (m *fakeMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

func TestEventPipeline_ExportsAndSendsWelcome(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	exporter := &fakeExporter{err: errors.New("nats down")}
	mail := &fakeMailer{}
	consumer := NewConsumerService(pubSub, "test-topic", exporter, mail, logger.NewNopLogger(), logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("test-topic", pubSub, logger.NewNopLogger())
	publisher.Publish(ctx, events.New(events.UserRegistered, map[string]interface{}{
		"cwid":      "12345678",
		"email":     "ada@example.edu",
		"firstName": "Ada",
	}))
	publisher.Publish(ctx, events.New(events.NoteCreated, map[string]interface{}{"noteId": 1}))

	assert.Eventually(t, func() bool { return exporter.count() == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return len(mail.recipients()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"ada@example.edu/Ada"}, mail.recipients())
}

func TestNoopPublisherService(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNoopPublisherService().Publish(context.Background(), events.New(events.NoteDeleted, nil))
		NewPublisherService("topic", nil, logger.NewNopLogger()).Publish(context.Background(), events.New(events.NoteDeleted, nil))
	})
}
