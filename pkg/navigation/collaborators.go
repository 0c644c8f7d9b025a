package navigation

import (
	"context"

	"github.com/AndreasArvidsson/jRouter/pkg/router"
)

// LocationSource reads and writes the current location path.
type LocationSource interface {
	// Read returns the current path without its prefix (e.g., "/users/7").
	Read() string

	// Write sets the current path. A silent write must not notify subscribers.
	Write(path string, silent bool)

	// Subscribe registers fn for location changes and returns a function
	// that removes it.
	Subscribe(fn func(path string)) (unsubscribe func())
}

// ContentLoader fetches the resource a route targets.
type ContentLoader interface {
	Fetch(ctx context.Context, resource string) ([]byte, error)
}

// ContentLoaderFunc adapts a function to ContentLoader.
type ContentLoaderFunc func(ctx context.Context, resource string) ([]byte, error)

// Fetch implements ContentLoader.
func (f ContentLoaderFunc) Fetch(ctx context.Context, resource string) ([]byte, error) {
	return f(ctx, resource)
}

// Renderer shows content in the designated target container.
type Renderer interface {
	Render(html []byte)
	Clear()
	ScrollToTop()
}

// NavHighlighter marks the navigation link for the active path.
type NavHighlighter interface {
	Highlight(path string)
}

// Formatter post-processes fetched content before it is rendered.
type Formatter interface {
	Format(m *router.MatchResult, html []byte) []byte
}

// Decision is the outcome of a pre hook.
type Decision int

const (
	// Continue lets the navigation load.
	Continue Decision = iota

	// Veto halts the navigation and rolls the location back.
	Veto
)

// Hooks are optional callbacks around each navigation.
type Hooks struct {
	// Pre runs before loading. Returning Veto halts the navigation; the
	// match can later be loaded with Resume.
	Pre func(m *router.MatchResult) Decision

	// Success runs after the content was rendered.
	Success func(m *router.MatchResult, body []byte)

	// Error runs after a failed fetch. err wraps the loader's error.
	Error func(m *router.MatchResult, err error)

	// Complete runs after Success or Error.
	Complete func(m *router.MatchResult)
}
