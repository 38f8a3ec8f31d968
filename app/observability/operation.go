package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/waddletracker/discord-bot/app/observability/attr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Instruments bundles the logger, tracer and metrics an operation reports to.
// Any field may be nil.
type Instruments struct {
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *Metrics
}

// RunOperation is the shared tracing/logging/metrics wrapper for handler work.
// A panic inside fn is recovered and returned as an error.
func RunOperation(ctx context.Context, in Instruments, operationName string, fn func(ctx context.Context) error) (err error) {
	if fn == nil {
		return errors.New("operation function is nil")
	}

	tracer := in.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}

	ctx, span := tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	start := time.Now()
	outcome := "success"

	defer func() {
		duration := time.Since(start)
		if in.Logger != nil {
			in.Logger.DebugContext(ctx, fmt.Sprintf("Completed %s", operationName),
				attr.String("duration_sec", fmt.Sprintf("%.2f", duration.Seconds())),
				attr.String("outcome", outcome),
			)
		}
		in.Metrics.ObserveOperation(operationName, outcome, duration)
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			outcome = "panic"
			if in.Logger != nil {
				in.Logger.ErrorContext(ctx, "Recovered from panic", attr.Error(err))
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")
		}
	}()

	if err = fn(ctx); err != nil {
		outcome = "error"
		wrapped := fmt.Errorf("%s operation error: %w", operationName, err)
		if in.Logger != nil {
			in.Logger.ErrorContext(ctx, fmt.Sprintf("Error in %s", operationName), attr.Error(wrapped))
		}
		span.RecordError(wrapped)
		span.SetStatus(codes.Error, err.Error())
		return wrapped
	}

	return nil
}
