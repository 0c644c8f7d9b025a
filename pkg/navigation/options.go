package navigation

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/AndreasArvidsson/jRouter/pkg/metrics"
)

// Option configures a Router.
type Option func(*Router)

// WithHooks sets the navigation hooks.
func WithHooks(h Hooks) Option {
	return func(r *Router) {
		r.hooks = h
	}
}

// WithHighlighter sets the navbar highlighter.
func WithHighlighter(h NavHighlighter) Option {
	return func(r *Router) {
		r.highlighter = h
	}
}

// WithFormatter sets the content formatter.
func WithFormatter(f Formatter) Option {
	return func(r *Router) {
		r.formatter = f
	}
}

// WithLogger sets the logger. Default: slog.Default() scoped to "navigation".
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithTracer sets the tracer used for dispatch spans.
// Default: the global OpenTelemetry tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Router) {
		r.tracer = tracer
	}
}

// WithMetrics sets the Prometheus collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(r *Router) {
		r.metrics = c
	}
}

// WithNotFoundHTML replaces the default not-found message.
func WithNotFoundHTML(html []byte) Option {
	return func(r *Router) {
		r.notFoundHTML = html
	}
}
