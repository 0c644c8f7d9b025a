package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AndreasArvidsson/jRouter/pkg/bridge"
	"github.com/AndreasArvidsson/jRouter/pkg/loader"
	"github.com/AndreasArvidsson/jRouter/pkg/metrics"
	"github.com/AndreasArvidsson/jRouter/pkg/navigation"
	"github.com/AndreasArvidsson/jRouter/pkg/router"
)

const shutdownTimeout = 5 * time.Second

// Options configures the development server.
type Options struct {
	// Addr is the listen address (e.g., "localhost:3000").
	Addr string

	// Table is the shared route table. Required.
	Table *router.Table

	// Loader fetches route targets. Required.
	Loader navigation.ContentLoader

	// Client configures the browser side (target selector, navbar).
	Client bridge.ClientConfig

	// Title is the shell page title (default: "jRouter").
	Title string

	// Index replaces the generated shell page. The client script is
	// injected before </body>.
	Index []byte

	// Manual waits for jRouter.init() in the page instead of starting
	// routing on connect.
	Manual bool

	// StaticDir is served under /static/ when set.
	StaticDir string

	// Hooks are installed on every connection's router.
	Hooks navigation.Hooks

	// Formatter is installed on every connection's router.
	Formatter navigation.Formatter

	// Metrics records navigation metrics. Nil disables them.
	Metrics *metrics.Collector

	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer

	// Logger is the server logger (default: slog.Default()).
	Logger *slog.Logger
}

// Server is the development server.
type Server struct {
	opts     Options
	logger   *slog.Logger
	upgrader *websocket.Upgrader
	handler  http.Handler
	page     string

	mu         sync.Mutex
	conns      map[*bridge.Conn]struct{}
	httpServer *http.Server
}

// New creates a development server.
func New(opts Options) (*Server, error) {
	if opts.Table == nil {
		return nil, errors.New("devserver: route table is required")
	}
	if opts.Loader == nil {
		return nil, errors.New("devserver: loader is required")
	}
	if opts.Title == "" {
		opts.Title = "jRouter"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		opts:     opts,
		logger:   opts.Logger.With("component", "devserver"),
		upgrader: bridge.NewUpgrader(),
		conns:    make(map[*bridge.Conn]struct{}),
	}

	script := bridge.ClientScript(opts.Client)
	if opts.Index != nil {
		s.page = injectScript(string(opts.Index), script)
	} else {
		links := LinksFromTable(opts.Table)
		s.page = injectScript(shellPage(opts.Title, opts.Client.Navbar.Selector, opts.Client.Target, links), script)
	}

	s.handler = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/_routes", s.handleRoutes)
	r.Get("/_fragments/*", s.handleFragment)

	if s.opts.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.opts.StaticDir))))
	}
	if s.opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(s.page))
}

type routeInfo struct {
	Pattern string `json:"pattern"`
	Target  string `json:"target"`
	Seq     int    `json:"seq"`
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	routes := s.opts.Table.Routes()
	out := make([]routeInfo, 0, len(routes))
	for _, route := range routes {
		out = append(out, routeInfo{Pattern: route.Pattern, Target: route.Target, Seq: route.Seq})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "*")

	body, err := s.opts.Loader.Fetch(r.Context(), resource)
	if err != nil {
		var se *loader.StatusError
		if errors.As(err, &se) {
			http.Error(w, http.StatusText(se.Status), se.Status)
			return
		}
		s.logger.Warn("fragment fetch failed", "resource", resource, "error", err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	ctx := r.Context()
	var nav *navigation.Router
	var startOnce sync.Once
	start := func() {
		startOnce.Do(func() { nav.Start(ctx) })
	}

	conn, err := bridge.Accept(ws, bridge.WithLogger(s.logger), bridge.WithInitHandler(start))
	if err != nil {
		s.logger.Debug("bridge handshake failed", "error", err)
		return
	}

	nav, err = navigation.New(&navigation.Config{
		Table:    s.opts.Table,
		Location: conn,
		Loader:   s.opts.Loader,
		Renderer: conn,
	},
		navigation.WithHighlighter(conn),
		navigation.WithHooks(s.opts.Hooks),
		navigation.WithFormatter(s.opts.Formatter),
		navigation.WithMetrics(s.opts.Metrics),
		navigation.WithLogger(s.logger.With("conn", conn.ID())),
	)
	if err != nil {
		s.logger.Error("router setup failed", "error", err)
		conn.Close()
		return
	}

	s.track(conn)
	defer s.untrack(conn)

	if !s.opts.Manual {
		start()
	}
	if err := conn.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Debug("connection ended", "conn", conn.ID(), "error", err)
	}
	nav.Stop()
}

func (s *Server) track(c *bridge.Conn) {
	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(c *bridge.Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

// ConnCount returns the number of connected browser tabs.
func (s *Server) ConnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	s.logger.Info("dev server listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.closeConns()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// closeConns closes hijacked WebSocket connections, which http.Server.Shutdown
// does not track.
func (s *Server) closeConns() {
	s.mu.Lock()
	conns := make([]*bridge.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}
