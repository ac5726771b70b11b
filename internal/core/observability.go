package core

import (
	"context"
	"time"
)

// Logger receives service-level diagnostics. Implementations must be safe
// for concurrent use.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// MetricsRecorder aggregates operation outcomes.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer opens a span per service operation.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan terminates one traced operation.
type TraceSpan interface {
	End(err error)
}

// NoopLogger discards all diagnostics.
type NoopLogger struct{}

// Infof implements Logger.
func (NoopLogger) Infof(string, ...any) {}

// Warnf implements Logger.
func (NoopLogger) Warnf(string, ...any) {}

// Errorf implements Logger.
func (NoopLogger) Errorf(string, ...any) {}

// instrument opens a span and returns the finish callback recording the
// operation's outcome across logger, metrics, and tracer.
func (s *Service) instrument(ctx context.Context, operation string) (context.Context, func(error)) {
	start := time.Now()
	var span TraceSpan
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operation)
	}
	return ctx, func(err error) {
		duration := time.Since(start)
		if s.metrics != nil {
			s.metrics.Observe(ctx, operation, err == nil, duration)
		}
		if span != nil {
			span.End(err)
		}
		if err != nil {
			s.logger.Errorf("%s: %v", operation, err)
		}
	}
}
