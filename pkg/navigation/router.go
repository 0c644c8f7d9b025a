package navigation

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AndreasArvidsson/jRouter/internal/errors"
	"github.com/AndreasArvidsson/jRouter/pkg/metrics"
	"github.com/AndreasArvidsson/jRouter/pkg/routepath"
	"github.com/AndreasArvidsson/jRouter/pkg/router"
)

const defaultTracerName = "jrouter"

// Config holds the required collaborators of a Router.
type Config struct {
	// Table is the route table. A new empty table is used when nil.
	Table *router.Table

	// Location reads and writes the current path.
	Location LocationSource

	// Loader fetches route targets.
	Loader ContentLoader

	// Renderer shows fetched content in the target container.
	Renderer Renderer
}

// Router owns one navigation state and drives the loading lifecycle.
type Router struct {
	table       *router.Table
	location    LocationSource
	loader      ContentLoader
	renderer    Renderer
	highlighter NavHighlighter
	formatter   Formatter
	hooks       Hooks

	logger       *slog.Logger
	tracer       trace.Tracer
	metrics      *metrics.Collector
	notFoundHTML []byte

	mu          sync.Mutex
	state       State
	params      map[string]string
	last        *router.MatchResult
	halted      *router.MatchResult
	generation  uint64
	cancelLoad  context.CancelFunc
	started     bool
	baseCtx     context.Context
	unsubscribe func()
}

// New creates a router. It fails with a configuration error when cfg or one
// of its collaborators is missing.
func New(cfg *Config, opts ...Option) (*Router, error) {
	if cfg == nil {
		return nil, errors.New("E001").WithSuggestion("navigation.New(&navigation.Config{...})")
	}
	if cfg.Renderer == nil {
		return nil, errors.New("E002")
	}
	if cfg.Loader == nil {
		return nil, errors.New("E003")
	}
	if cfg.Location == nil {
		return nil, errors.New("E004")
	}

	r := &Router{
		table:    cfg.Table,
		location: cfg.Location,
		loader:   cfg.Loader,
		renderer: cfg.Renderer,
		params:   map[string]string{},
	}
	if r.table == nil {
		r.table = router.NewTable()
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default().With("component", "navigation")
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(defaultTracerName)
	}
	if r.notFoundHTML == nil {
		r.notFoundHTML = defaultNotFoundHTML()
	}

	return r, nil
}

// Table returns the router's route table.
func (r *Router) Table() *router.Table {
	return r.table
}

// Register adds a route. See router.Table.Register.
func (r *Router) Register(pattern, target string) error {
	_, err := r.table.Register(pattern, target)
	return err
}

// Start subscribes to location changes and dispatches the current path.
// An empty location is first set to "/". Calling Start on a started router
// does nothing.
func (r *Router) Start(ctx context.Context) {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return
	}
	r.started = true
	r.baseCtx = ctx
	r.mu.Unlock()

	if r.location.Read() == "" {
		r.location.Write("/", true)
	}

	unsubscribe := r.location.Subscribe(r.onLocationChange)
	r.mu.Lock()
	r.unsubscribe = unsubscribe
	r.mu.Unlock()

	r.metrics.RouterStarted()
	r.logger.Debug("router started", "path", r.location.Read())

	r.Dispatch(ctx, r.location.Read())
}

// Stop unsubscribes from location changes and cancels any in-flight fetch.
func (r *Router) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.started = false
	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	if r.cancelLoad != nil {
		r.cancelLoad()
		r.cancelLoad = nil
	}
	r.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	r.metrics.RouterStopped()
}

func (r *Router) onLocationChange(path string) {
	r.mu.Lock()
	ctx := r.baseCtx
	r.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	r.Dispatch(ctx, path)
}

// Dispatch routes path: it selects the best route, falls back to the "404"
// route or the default not-found message, runs the pre hook and loads the
// content.
func (r *Router) Dispatch(ctx context.Context, path string) NavigateResult {
	ctx, span := r.tracer.Start(ctx, "jrouter.dispatch",
		trace.WithAttributes(attribute.String("jrouter.path", path)))
	defer span.End()

	r.setState(StateDispatching)

	result := r.dispatch(ctx, path)

	span.SetAttributes(attribute.String("jrouter.outcome", result.Outcome.String()))
	if result.Match != nil {
		span.SetAttributes(attribute.String("jrouter.route", result.Match.Route.Pattern))
	}
	if result.Err != nil {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, result.Err.Error())
	}
	r.metrics.ObserveDispatch(result.Outcome.String())

	return result
}

func (r *Router) dispatch(ctx context.Context, path string) NavigateResult {
	m := r.table.Match(path)
	fallback := false
	if m == nil {
		m = r.table.Match(router.NotFoundPattern)
		if m == nil {
			r.logger.Debug("no route matched", "path", path)

			r.mu.Lock()
			r.supersedeLocked()
			r.params = map[string]string{}
			r.state = StateNotFound
			r.mu.Unlock()

			r.renderer.Render(r.notFoundHTML)
			r.setState(StateIdle)
			return NavigateResult{Path: path, Outcome: OutcomeNotFound}
		}
		// Keep the requested path so a later rollback returns to it.
		m.Path = path
		fallback = true
	}

	if r.hooks.Pre != nil && r.hooks.Pre(m) == Veto {
		r.mu.Lock()
		previous := "/"
		if r.last != nil {
			previous = r.last.Path
		}
		r.halted = m
		r.state = StateHalted
		r.mu.Unlock()

		r.location.Write(previous, true)
		r.logger.Debug("navigation halted", "path", path, "route", m.Route.Pattern, "rollback", previous)
		return NavigateResult{Path: path, Match: m, Outcome: OutcomeHalted}
	}

	result := r.load(ctx, m)
	if fallback && result.Outcome == OutcomeLoaded {
		result.Outcome = OutcomeFallback
	}
	return result
}

// Resume loads the match halted by the last pre hook veto without running
// the pre hook again. With nothing halted it logs a warning and returns an
// OutcomeNoop result carrying a W301 error.
func (r *Router) Resume(ctx context.Context) NavigateResult {
	r.mu.Lock()
	m := r.halted
	r.mu.Unlock()

	if m == nil {
		warn := errors.New("W301")
		r.logger.Warn("can't continue route", "error", warn.FormatCompact())
		return NavigateResult{Outcome: OutcomeNoop, Err: warn}
	}

	ctx, span := r.tracer.Start(ctx, "jrouter.resume",
		trace.WithAttributes(
			attribute.String("jrouter.path", m.Path),
			attribute.String("jrouter.route", m.Route.Pattern),
		))
	defer span.End()

	r.location.Write(m.Path, true)
	result := r.load(ctx, m)
	r.metrics.ObserveDispatch(result.Outcome.String())
	return result
}

// load enters the Loading state for m and runs the fetch to completion.
func (r *Router) load(ctx context.Context, m *router.MatchResult) NavigateResult {
	r.mu.Lock()
	r.params = maps.Clone(m.Params)
	r.last = m
	r.halted = nil
	r.state = StateLoading
	gen := r.supersedeLocked()
	loadCtx, cancel := context.WithCancel(ctx)
	r.cancelLoad = cancel
	r.mu.Unlock()
	defer cancel()

	if r.highlighter != nil {
		r.highlighter.Highlight(m.Path)
	}

	start := time.Now()
	body, err := r.loader.Fetch(loadCtx, m.Route.Target)
	elapsed := time.Since(start)

	r.mu.Lock()
	superseded := gen != r.generation
	if !superseded {
		r.cancelLoad = nil
	}
	r.mu.Unlock()

	if superseded {
		r.logger.Debug("discarding superseded load", "path", m.Path, "target", m.Route.Target)
		return NavigateResult{Path: m.Path, Match: m, Outcome: OutcomeSuperseded}
	}

	r.metrics.ObserveLoad(m.Route.Target, elapsed, err)

	if err != nil {
		loadErr := errors.New("E201").WithDetailf("target %q", m.Route.Target).Wrap(err)
		r.logger.Warn("content load failed", "path", m.Path, "target", m.Route.Target, "error", err)

		r.renderer.Clear()
		r.mu.Lock()
		r.params = map[string]string{}
		r.state = StateLoadFailed
		r.mu.Unlock()

		if r.hooks.Error != nil {
			r.hooks.Error(m, loadErr)
		}
		if r.hooks.Complete != nil {
			r.hooks.Complete(m)
		}
		r.renderer.ScrollToTop()
		r.setState(StateIdle)
		return NavigateResult{Path: m.Path, Match: m, Outcome: OutcomeLoadFailed, Err: loadErr}
	}

	html := body
	if r.formatter != nil {
		html = r.formatter.Format(m, body)
	}
	r.renderer.Render(html)
	r.setState(StateLoaded)

	if r.hooks.Success != nil {
		r.hooks.Success(m, body)
	}
	if r.hooks.Complete != nil {
		r.hooks.Complete(m)
	}
	r.renderer.ScrollToTop()
	r.setState(StateIdle)

	r.logger.Debug("route loaded", "path", m.Path, "route", m.Route.Pattern, "duration", elapsed)
	return NavigateResult{Path: m.Path, Match: m, Outcome: OutcomeLoaded}
}

// supersedeLocked cancels the in-flight fetch, if any, and starts a new
// generation so its result is discarded. r.mu must be held.
func (r *Router) supersedeLocked() uint64 {
	r.generation++
	if r.cancelLoad != nil {
		r.cancelLoad()
		r.cancelLoad = nil
	}
	return r.generation
}

func (r *Router) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// State returns the current lifecycle state.
func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Param returns one parameter of the currently loaded route.
func (r *Router) Param(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.params[name]
	return v, ok
}

// Params returns a copy of the current route's parameters.
func (r *Router) Params() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.params)
}

// DecodeParams decodes the current route's parameters into the struct
// target points to. See router.DecodeParams.
func (r *Router) DecodeParams(target any) error {
	return router.DecodeParams(r.Params(), target)
}

// Last returns the most recently loaded match, or nil.
func (r *Router) Last() *router.MatchResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Halted returns the match waiting for Resume, or nil.
func (r *Router) Halted() *router.MatchResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.halted
}

// CurrentPath returns the current location path.
func (r *Router) CurrentPath() string {
	return r.location.Read()
}

// SetPath resolves path against the current location and writes it.
// Relative paths starting with "./" or "../" are supported. The dispatch
// happens through the location subscription. An empty path only reads.
func (r *Router) SetPath(path string) (string, error) {
	if path != "" {
		resolved, err := routepath.Resolve(r.location.Read(), path)
		if err != nil {
			return r.location.Read(), errors.New("E202").WithDetailf("path %q", path).Wrap(err)
		}
		r.location.Write(resolved, false)
	}
	return r.location.Read(), nil
}
