// Package api is the bot's only gateway to the WaddleTracker backend. Every
// method maps to one REST endpoint, unwraps the shared response envelope and
// reports failures as *Error with a classified Kind.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"github.com/waddletracker/discord-bot/app/observability"
	"github.com/waddletracker/discord-bot/app/observability/attr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	UserAgent      = "WaddleTracker-Discord-Bot/1.0.0"
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 4 << 20
)

// envelope is the wrapper every backend response uses.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Message    string          `json:"message"`
	StatusCode int             `json:"statusCode"`
	Code       string          `json:"code"`
}

// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    *observability.Metrics
}

type Option func(*Client)

// WithHTTPClient replaces the default client; its Timeout is left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sends "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) { c.tracer = tracer }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient builds a client for baseURL. A non-positive timeout means DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     observability.NopLogger(),
		tracer:     noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range opts {
		opt(c)
	}

	logger := c.logger
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "waddle-api",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Business errors (4xx) are answers, not outages.
		IsSuccessful: func(err error) bool {
			var apiErr *Error
			if err == nil {
				return true
			}
			return errors.As(err, &apiErr) && apiErr.StatusCode < 500 && apiErr.Kind != KindTimeout
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("API circuit breaker state changed",
				attr.String("breaker", name),
				attr.String("from", from.String()),
				attr.String("to", to.String()),
			)
		},
	})
	return c
}

// do performs one request. op names the client method for metrics and spans.
func (c *Client) do(ctx context.Context, op, method, endpoint string, query url.Values, body, out any) error {
	ctx, span := c.tracer.Start(ctx, "api."+op, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("api.endpoint", endpoint),
	))
	defer span.End()

	start := time.Now()
	status := 0

	// A request abandoned by its caller says nothing about backend health,
	// so the breaker sees it as a success. The http.Client timeout still counts.
	var abandoned error
	_, err := c.breaker.Execute(func() (interface{}, error) {
		var rtErr error
		status, rtErr = c.roundTrip(ctx, method, endpoint, query, body, out)
		if rtErr != nil && ctx.Err() != nil {
			abandoned = rtErr
			return nil, nil
		}
		return nil, rtErr
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = newError(endpoint, http.StatusServiceUnavailable, "Backend temporarily unavailable, please try again shortly", "", err)
	}
	if err == nil && abandoned != nil {
		err = abandoned
	}

	elapsed := time.Since(start)
	c.metrics.ObserveAPIRequest(op, status, elapsed)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		level := slog.LevelError
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			level = slog.LevelWarn
		}
		c.logger.Log(ctx, level, "API request failed",
			attr.String("operation", op),
			attr.String("method", method),
			attr.String("endpoint", endpoint),
			attr.Int("status", status),
			attr.String("kind", KindOf(err).String()),
			attr.Duration("elapsed", elapsed),
			attr.Error(err),
		)
		return err
	}

	c.logger.DebugContext(ctx, "API request completed",
		attr.String("operation", op),
		attr.String("method", method),
		attr.String("endpoint", endpoint),
		attr.Int("status", status),
		attr.Duration("elapsed", elapsed),
	)
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, endpoint string, query url.Values, body, out any) (int, error) {
	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, newError(endpoint, http.StatusInternalServerError, fmt.Sprintf("Failed to encode request for %s", endpoint), "", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, newError(endpoint, http.StatusInternalServerError, fmt.Sprintf("Failed to %s %s", method, endpoint), "", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, transportError(method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, transportError(method, endpoint, err)
	}

	var env envelope
	decodeErr := errors.New("empty response body")
	if len(bytes.TrimSpace(raw)) > 0 {
		decodeErr = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := firstNonEmpty(env.Error, env.Message, http.StatusText(resp.StatusCode))
		return resp.StatusCode, newError(endpoint, resp.StatusCode, msg, env.Code, nil)
	}
	if decodeErr != nil {
		return resp.StatusCode, newError(endpoint, http.StatusBadGateway, fmt.Sprintf("Invalid response from %s", endpoint), "", decodeErr)
	}
	if !env.Success {
		status := env.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		msg := firstNonEmpty(env.Error, env.Message, "API request failed")
		return resp.StatusCode, newError(endpoint, status, msg, env.Code, nil)
	}

	if out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return resp.StatusCode, newError(endpoint, http.StatusBadGateway, fmt.Sprintf("Invalid response from %s", endpoint), "", err)
		}
	}
	return resp.StatusCode, nil
}

func transportError(method, endpoint string, err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return newError(endpoint, http.StatusGatewayTimeout, fmt.Sprintf("Request to %s timed out", endpoint), "", err)
	}
	return newError(endpoint, http.StatusInternalServerError, fmt.Sprintf("Failed to %s %s", method, endpoint), "", err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func userPath(prefix, discordID string) string {
	return prefix + "/" + url.PathEscape(discordID)
}
