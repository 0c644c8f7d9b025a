// Package navbar resolves which navigation links are active for a location.
//
// A link is active when its href ends with "#" followed by the current path,
// or with a bare "#" when the path is empty. Every matching link is active,
// so "index.html#/about" and "#/about" are both active for "/about".
package navbar

import (
	"slices"
	"strings"
	"sync"
)

// Options describes how the active link is marked in the page.
type Options struct {
	// Selector locates the navbar element (e.g., "#nav").
	Selector string `json:"selector,omitempty"`

	// Class is the CSS class marking the active link (default: "active").
	Class string `json:"class,omitempty"`

	// Parent marks the link's parent element instead of the link.
	Parent bool `json:"parent,omitempty"`
}

// DefaultClass is the CSS class used when Options.Class is empty.
const DefaultClass = "active"

// ActiveClass returns the configured class or DefaultClass.
func (o Options) ActiveClass() string {
	if o.Class == "" {
		return DefaultClass
	}
	return o.Class
}

// Href returns the href suffix identifying path.
func Href(path string) string {
	return "#" + path
}

// Resolver tracks the set of known link hrefs and the active ones.
type Resolver struct {
	mu     sync.RWMutex
	links  []string
	active []string
}

// NewResolver creates a resolver for the given hrefs.
func NewResolver(hrefs ...string) *Resolver {
	return &Resolver{links: slices.Clone(hrefs)}
}

// Add appends hrefs.
func (r *Resolver) Add(hrefs ...string) {
	r.mu.Lock()
	r.links = append(r.links, hrefs...)
	r.mu.Unlock()
}

// Links returns a copy of the known hrefs in insertion order.
func (r *Resolver) Links() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.links)
}

// Match returns the hrefs active for path without changing the resolver.
func (r *Resolver) Match(path string) []string {
	suffix := Href(path)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, href := range r.links {
		if strings.HasSuffix(href, suffix) {
			out = append(out, href)
		}
	}
	return out
}

// Highlight makes the links matching path the active set.
// It implements navigation.NavHighlighter.
func (r *Resolver) Highlight(path string) {
	active := r.Match(path)
	r.mu.Lock()
	r.active = active
	r.mu.Unlock()
}

// Active returns the hrefs marked by the last Highlight.
func (r *Resolver) Active() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.active)
}

// IsActive reports whether href is in the active set.
func (r *Resolver) IsActive(href string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.active, href)
}
