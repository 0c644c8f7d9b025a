package navigation

import (
	"io"
	"sync"
)

// MemoryLocation is an in-process LocationSource.
// Like a browser address bar, a non-silent write notifies subscribers only
// when the path actually changes.
type MemoryLocation struct {
	mu     sync.Mutex
	path   string
	subs   map[int]func(string)
	nextID int
}

// NewMemoryLocation creates a location holding initial.
func NewMemoryLocation(initial string) *MemoryLocation {
	return &MemoryLocation{
		path: initial,
		subs: make(map[int]func(string)),
	}
}

// Read implements LocationSource.
func (l *MemoryLocation) Read() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// Write implements LocationSource.
func (l *MemoryLocation) Write(path string, silent bool) {
	l.mu.Lock()
	changed := l.path != path
	l.path = path
	subs := make([]func(string), 0, len(l.subs))
	if changed && !silent {
		for _, fn := range l.subs {
			subs = append(subs, fn)
		}
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(path)
	}
}

// Navigate simulates the user changing the address.
func (l *MemoryLocation) Navigate(path string) {
	l.Write(path, false)
}

// Subscribe implements LocationSource.
func (l *MemoryLocation) Subscribe(fn func(path string)) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

// WriterRenderer renders content by writing it to an io.Writer.
// Clear and ScrollToTop have no effect on a stream.
type WriterRenderer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterRenderer creates a renderer writing to w.
func NewWriterRenderer(w io.Writer) *WriterRenderer {
	return &WriterRenderer{w: w}
}

// Render implements Renderer.
func (r *WriterRenderer) Render(html []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.w.Write(html)
	if len(html) == 0 || html[len(html)-1] != '\n' {
		io.WriteString(r.w, "\n")
	}
}

// Clear implements Renderer.
func (r *WriterRenderer) Clear() {}

// ScrollToTop implements Renderer.
func (r *WriterRenderer) ScrollToTop() {}
