// Package eventbus is the in-process domain event bus. Modules publish JSON
// payloads on topics; subscribers register handlers on the router.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Publisher is what modules need to emit events.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// HandlerFunc processes one message. Returning an error nacks it.
type HandlerFunc func(ctx context.Context, msg *message.Message) error

// Bus couples a gochannel pub/sub with a watermill router.
type Bus struct {
	pubsub *gochannel.GoChannel
	router *message.Router
	logger *slog.Logger
}

var _ Publisher = (*Bus)(nil)

// New creates a bus. Handlers must be added before Run.
func New(logger *slog.Logger) (*Bus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 256,
	}, wmLogger)

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create watermill router: %w", err)
	}
	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	return &Bus{pubsub: pubsub, router: router, logger: logger}, nil
}

// Publish marshals payload as JSON and publishes it on topic.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	msg.Metadata.Set("topic", topic)
	middleware.SetCorrelationID(watermill.NewShortUUID(), msg)

	if err := b.pubsub.Publish(topic, msg); err != nil {
		b.logger.ErrorContext(ctx, "Failed to publish event", attr.String("topic", topic), attr.Error(err))
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	b.logger.DebugContext(ctx, "Event published", attr.String("topic", topic), attr.String("message_id", msg.UUID))
	return nil
}

// Handle registers h for topic under a unique handler name.
func (b *Bus) Handle(name, topic string, h HandlerFunc) {
	b.router.AddNoPublisherHandler(name, topic, b.pubsub, func(msg *message.Message) error {
		return h(msg.Context(), msg)
	})
}

// Run blocks until ctx is cancelled or the router stops.
func (b *Bus) Run(ctx context.Context) error {
	return b.router.Run(ctx)
}

// Running is closed once the router has started its handlers.
func (b *Bus) Running() chan struct{} {
	return b.router.Running()
}

// Subscribe returns a raw subscription, for tests and ad-hoc consumers.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Close stops the router and the pub/sub.
func (b *Bus) Close() error {
	if err := b.router.Close(); err != nil {
		return fmt.Errorf("failed to close router: %w", err)
	}
	return b.pubsub.Close()
}

// Decode unmarshals a message payload into dst.
func Decode(msg *message.Message, dst any) error {
	if err := json.Unmarshal(msg.Payload, dst); err != nil {
		return fmt.Errorf("failed to decode message %s: %w", msg.UUID, err)
	}
	return nil
}
