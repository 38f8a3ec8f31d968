package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/waddletracker/discord-bot/app/observability/attr"
)

// Router consumes bus topics and hands them to Handlers.
type Router struct {
	Router *message.Router
	logger *slog.Logger
}

// NewRouter configures middleware, metrics and one handler per topic.
// reg may be nil to skip router metrics.
func NewRouter(bus *Bus, handlers *Handlers, logger *slog.Logger, reg prometheus.Registerer) (*Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 30 * time.Second}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create event router: %w", err)
	}

	if reg != nil {
		metricsBuilder := metrics.NewPrometheusMetricsBuilder(reg, "waddle", "events")
		metricsBuilder.AddPrometheusRouterMetrics(router)
	}

	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			Logger:          watermill.NewSlogLogger(logger),
		}.Middleware,
	)

	r := &Router{Router: router, logger: logger}
	r.registerHandlers(bus.Subscriber, handlers)
	return r, nil
}

func (r *Router) registerHandlers(subscriber message.Subscriber, handlers *Handlers) {
	eventsToHandlers := map[string]message.NoPublishHandlerFunc{
		ReminderDue:     handlers.HandleReminderDue,
		CheerSent:       handlers.HandleCheerSent,
		CheckInRecorded: handlers.HandleCheckInRecorded,
	}
	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("waddle.%s", topic)
		r.Router.AddNoPublisherHandler(handlerName, topic, subscriber, func(msg *message.Message) error {
			if err := handlerFunc(msg); err != nil {
				r.logger.Error("Error processing event",
					attr.Topic(topic),
					attr.String("message_id", msg.UUID),
					attr.Error(err),
				)
				return err
			}
			return nil
		})
	}
}

// Run blocks until ctx is cancelled or the router is closed.
func (r *Router) Run(ctx context.Context) error {
	return r.Router.Run(ctx)
}

// Running is closed once all handlers are subscribed.
func (r *Router) Running() chan struct{} {
	return r.Router.Running()
}

// Close stops the router.
func (r *Router) Close() error {
	return r.Router.Close()
}
