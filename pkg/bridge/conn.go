package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	gotilsbytes "github.com/savsgio/gotils/bytes"

	"github.com/AndreasArvidsson/jRouter/pkg/navbar"
)

const (
	idLength         = 12
	handshakeTimeout = 10 * time.Second
	writeTimeout     = 10 * time.Second
)

// ErrHandshake is returned by Accept when the browser does not open with a
// hashchange message.
var ErrHandshake = errors.New("bridge: expected initial hashchange")

// Conn is one browser tab. It implements navigation.LocationSource,
// navigation.Renderer and navigation.NavHighlighter.
type Conn struct {
	id     string
	ws     *websocket.Conn
	logger *slog.Logger

	writeMu sync.Mutex

	mu     sync.Mutex
	path   string
	subs   map[int]func(string)
	nextID int
	closed bool
	done   chan struct{}
	onInit func()
}

// Option configures a Conn.
type Option func(*Conn)

// WithLogger sets the logger. Default: slog.Default() scoped to "bridge".
func WithLogger(logger *slog.Logger) Option {
	return func(c *Conn) {
		c.logger = logger
	}
}

// WithInitHandler sets the function run when the browser asks to start
// routing.
func WithInitHandler(fn func()) Option {
	return func(c *Conn) {
		c.onInit = fn
	}
}

// Accept takes ownership of ws and waits for the browser's initial
// hashchange.
func Accept(ws *websocket.Conn, opts ...Option) (*Conn, error) {
	c := &Conn{
		id:   string(gotilsbytes.Rand(make([]byte, idLength))),
		ws:   ws,
		subs: make(map[int]func(string)),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default().With("component", "bridge")
	}
	c.logger = c.logger.With("conn", c.id)

	ws.SetReadDeadline(time.Now().Add(handshakeTimeout))
	var hello Message
	if err := ws.ReadJSON(&hello); err != nil {
		ws.Close()
		return nil, fmt.Errorf("bridge: handshake: %w", err)
	}
	if hello.Type != TypeHashChange {
		ws.Close()
		return nil, ErrHandshake
	}
	ws.SetReadDeadline(time.Time{})

	c.path = hello.Path
	c.logger.Debug("browser connected", "path", hello.Path, "remote", ws.RemoteAddr().String())
	return c, nil
}

// ID returns the random connection identifier.
func (c *Conn) ID() string {
	return c.id
}

// Serve reads browser messages until the connection closes or ctx is done.
// Subscribers run on the calling goroutine.
func (c *Conn) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()
	defer c.Close()

	for {
		var msg Message
		if err := c.ws.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			if c.isClosed() {
				return nil
			}
			return err
		}

		switch msg.Type {
		case TypeHashChange:
			c.hashChange(msg.Path)
		case TypeInit:
			if c.onInit != nil {
				c.onInit()
			}
		default:
			c.logger.Debug("ignoring message", "type", msg.Type)
		}
	}
}

func (c *Conn) hashChange(path string) {
	c.mu.Lock()
	if path == c.path {
		c.mu.Unlock()
		return
	}
	c.path = path
	subs := c.subscribers()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(path)
	}
}

// subscribers must be called with c.mu held.
func (c *Conn) subscribers() []func(string) {
	subs := make([]func(string), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return subs
}

// Read implements navigation.LocationSource.
func (c *Conn) Read() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

// Write implements navigation.LocationSource. The browser is told to update
// its fragment; a non-silent write that changes the path also notifies
// subscribers.
func (c *Conn) Write(path string, silent bool) {
	c.mu.Lock()
	changed := c.path != path
	c.path = path
	var subs []func(string)
	if changed && !silent {
		subs = c.subscribers()
	}
	c.mu.Unlock()

	c.send(Message{Type: TypeLocation, Path: path, Silent: silent})

	for _, fn := range subs {
		fn(path)
	}
}

// Subscribe implements navigation.LocationSource.
func (c *Conn) Subscribe(fn func(path string)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Render implements navigation.Renderer.
func (c *Conn) Render(html []byte) {
	c.send(Message{Type: TypeRender, HTML: string(html)})
}

// Clear implements navigation.Renderer.
func (c *Conn) Clear() {
	c.send(Message{Type: TypeClear})
}

// ScrollToTop implements navigation.Renderer.
func (c *Conn) ScrollToTop() {
	c.send(Message{Type: TypeScrollTop})
}

// Highlight implements navigation.NavHighlighter.
func (c *Conn) Highlight(path string) {
	c.send(Message{Type: TypeHighlight, Href: navbar.Href(path)})
}

func (c *Conn) send(msg Message) {
	if c.isClosed() {
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.ws.WriteJSON(msg); err != nil {
		c.logger.Debug("write failed", "type", msg.Type, "error", err)
		c.Close()
	}
}

// Done is closed when the connection closes.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Close closes the connection. It is safe to call more than once.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	c.logger.Debug("browser disconnected")
	return c.ws.Close()
}

func (c *Conn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
