package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/grafana/loki-client-go/loki"
	slogloki "github.com/samber/slog-loki/v3"
)

// LoggerOptions selects the slog handler built by NewLogger.
type LoggerOptions struct {
	Level        string
	Format       string // "json" or "text"
	ServiceName  string
	LokiURL      string
	LokiTenantID string
	Output       io.Writer
}

// NewLogger returns the process logger and a flush function that must run on shutdown.
// When LokiURL is set records are pushed to Loki instead of the local writer.
func NewLogger(opts LoggerOptions) (*slog.Logger, func(), error) {
	level := ParseLevel(opts.Level)

	if opts.LokiURL != "" {
		cfg, err := loki.NewDefaultConfig(opts.LokiURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build loki config: %w", err)
		}
		cfg.TenantID = opts.LokiTenantID

		client, err := loki.New(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create loki client: %w", err)
		}

		handler := slogloki.Option{Level: level, Client: client}.NewLokiHandler()
		logger := slog.New(handler).With(slog.String("service", opts.ServiceName))
		return logger, client.Stop, nil
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	logger := slog.New(handler)
	if opts.ServiceName != "" {
		logger = logger.With(slog.String("service", opts.ServiceName))
	}
	return logger, func() {}, nil
}

// ParseLevel maps debug/info/warn/error onto slog levels, defaulting to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NopLogger discards everything. Handy in tests and for optional dependencies.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
