package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	nc "github.com/nats-io/nats.go"
	"github.com/waddletracker/discord-bot/app/observability"
	"github.com/waddletracker/discord-bot/app/observability/attr"
)

// Bus publishes bot events and exposes the subscriber the router consumes.
type Bus struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
	logger     *slog.Logger
	metrics    *observability.Metrics
	closers    []func() error
}

// BusConfig selects the transport. An empty NATSURL keeps events in-process.
type BusConfig struct {
	NATSURL     string
	QueueGroup  string
	ServiceName string
}

// NewBus builds a Bus on go-channel or NATS core (JetStream disabled).
func NewBus(cfg BusConfig, logger *slog.Logger, metrics *observability.Metrics) (*Bus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	if cfg.NATSURL == "" {
		pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, wmLogger)
		return &Bus{
			Publisher:  pubSub,
			Subscriber: pubSub,
			logger:     logger,
			metrics:    metrics,
			closers:    []func() error{pubSub.Close},
		}, nil
	}

	natsOptions := []nc.Option{
		nc.Name(cfg.ServiceName),
		nc.RetryOnFailedConnect(true),
		nc.Timeout(10 * time.Second),
		nc.ReconnectWait(2 * time.Second),
	}
	marshaler := &wmnats.NATSMarshaler{}
	jsConfig := wmnats.JetStreamConfig{Disabled: true}

	publisher, err := wmnats.NewPublisher(wmnats.PublisherConfig{
		URL:         cfg.NATSURL,
		NatsOptions: natsOptions,
		Marshaler:   marshaler,
		JetStream:   jsConfig,
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(wmnats.SubscriberConfig{
		URL:              cfg.NATSURL,
		QueueGroupPrefix: cfg.QueueGroup,
		SubscribersCount: 1,
		CloseTimeout:     30 * time.Second,
		AckWaitTimeout:   30 * time.Second,
		NatsOptions:      natsOptions,
		Unmarshaler:      marshaler,
		JetStream:        jsConfig,
	}, wmLogger)
	if err != nil {
		_ = publisher.Close()
		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	return &Bus{
		Publisher:  publisher,
		Subscriber: subscriber,
		logger:     logger,
		metrics:    metrics,
		closers:    []func() error{subscriber.Close, publisher.Close},
	}, nil
}

// Publish marshals payload as JSON and publishes it on topic with a fresh
// correlation id.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		b.metrics.RecordEvent(topic, "marshal_error")
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	middleware.SetCorrelationID(uuid.NewString(), msg)
	msg.Metadata.Set("topic", topic)
	msg.SetContext(ctx)

	if err := b.Publisher.Publish(topic, msg); err != nil {
		b.metrics.RecordEvent(topic, "error")
		b.logger.ErrorContext(ctx, "Failed to publish event", attr.Topic(topic), attr.Error(err))
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	b.metrics.RecordEvent(topic, "success")
	b.logger.DebugContext(ctx, "Published event", attr.Topic(topic), attr.CorrelationIDFromMsg(msg))
	return nil
}

func (b *Bus) Close() error {
	var firstErr error
	for _, closeFn := range b.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
