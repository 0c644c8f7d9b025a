package loader

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AndreasArvidsson/jRouter/pkg/metrics"
)

// InstrumentConfig configures Instrument.
type InstrumentConfig struct {
	// Backend labels metrics and spans, for example "fs", "http" or "s3".
	Backend string

	// Metrics counts fetches. Nil disables metrics.
	Metrics *metrics.Collector

	// Tracer creates fetch spans. Default: the global tracer provider.
	Tracer trace.Tracer

	// Logger logs failed fetches at debug level. Default: slog.Default().
	Logger *slog.Logger
}

type instrumented struct {
	next    Loader
	backend string
	metrics *metrics.Collector
	tracer  trace.Tracer
	logger  *slog.Logger
}

// Instrument wraps next so every fetch gets a span and a fetch counter.
//
// Example:
//
//	l := loader.Instrument(loader.NewFS(os.DirFS("site")), loader.InstrumentConfig{
//	    Backend: "fs",
//	    Metrics: collector,
//	})
func Instrument(next Loader, cfg InstrumentConfig) Loader {
	if cfg.Backend == "" {
		cfg.Backend = "custom"
	}
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer("jrouter")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &instrumented{
		next:    next,
		backend: cfg.Backend,
		metrics: cfg.Metrics,
		tracer:  cfg.Tracer,
		logger:  cfg.Logger.With("component", "loader", "backend", cfg.Backend),
	}
}

func (l *instrumented) Fetch(ctx context.Context, resource string) ([]byte, error) {
	ctx, span := l.tracer.Start(ctx, "jrouter.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("jrouter.loader", l.backend),
			attribute.String("jrouter.resource", resource),
		),
	)
	defer span.End()

	body, err := l.next.Fetch(ctx, resource)

	status := fetchStatus(err)
	l.metrics.ObserveFetch(l.backend, status)
	span.SetAttributes(attribute.String("jrouter.fetch_status", status))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l.logger.Debug("fetch failed", "resource", resource, "status", status, "error", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("jrouter.content_length", len(body)))
	return body, nil
}

// fetchStatus is "ok", the StatusError code, or an error category.
func fetchStatus(err error) string {
	if err == nil {
		return "ok"
	}
	var se *StatusError
	if errors.As(err, &se) {
		return strconv.Itoa(se.Status)
	}
	return metrics.ErrorCategory(err)
}
