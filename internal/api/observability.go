package api

import (
	"context"
	"io"
	"log/slog"
)

// CallEvent records metadata about a single resource call.
type CallEvent struct {
	Resource   string
	Method     string
	StatusCode int
	LatencyMs  int64
	Success    bool
	ErrorCode  string
	Err        error
}

// Observer receives events about resource calls for logging and metrics.
type Observer interface {
	OnCallComplete(ctx context.Context, event CallEvent)
}

// LogObserver writes call events through slog. Successful calls log at
// debug level and failures at error level.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs text records at or above
// level to w.
func NewLogObserver(w io.Writer, level slog.Level) *LogObserver {
	return &LogObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

func (o *LogObserver) OnCallComplete(ctx context.Context, event CallEvent) {
	attrs := []any{
		"resource", event.Resource,
		"method", event.Method,
		"status", event.StatusCode,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		attrs = append(attrs, "error_code", event.ErrorCode)
		if event.Err != nil {
			attrs = append(attrs, "error", event.Err.Error())
		}
		o.logger.ErrorContext(ctx, "api_call", attrs...)
		return
	}
	o.logger.DebugContext(ctx, "api_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(context.Context, CallEvent) {}
