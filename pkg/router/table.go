package router

import (
	"slices"
	"sync"
)

// MatchResult is the outcome of matching a path against a Table.
type MatchResult struct {
	// Path is the raw incoming path.
	Path string

	// Route is the winning route.
	Route *CompiledRoute

	// Params maps parameter names to the matched segment values.
	Params map[string]string
}

// Param returns a single parameter value.
func (m *MatchResult) Param(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.Params[name]
	return v, ok
}

// Table is an append-only registry of compiled routes.
// It is safe for concurrent use and may be shared by several navigators.
type Table struct {
	mu     sync.RWMutex
	routes []*CompiledRoute
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{}
}

// Register compiles pattern and appends it to the table.
func (t *Table) Register(pattern, target string) (*CompiledRoute, error) {
	route, err := Compile(pattern, target)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	route.Seq = len(t.routes)
	t.routes = append(t.routes, route)
	t.mu.Unlock()

	return route, nil
}

// MustRegister is like Register but panics on error.
func (t *Table) MustRegister(pattern, target string) *CompiledRoute {
	route, err := t.Register(pattern, target)
	if err != nil {
		panic(err)
	}
	return route
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.routes)
}

// Routes returns the registered routes in registration order.
func (t *Table) Routes() []*CompiledRoute {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.routes)
}

// Candidates returns every route compatible with urlTokens, best first.
func (t *Table) Candidates(urlTokens []string) []*CompiledRoute {
	t.mu.RLock()
	var compatible []*CompiledRoute
	for _, r := range t.routes {
		if r.Compatible(urlTokens) {
			compatible = append(compatible, r)
		}
	}
	t.mu.RUnlock()

	slices.SortStableFunc(compatible, func(a, b *CompiledRoute) int {
		switch {
		case moreSpecific(a, b):
			return -1
		case moreSpecific(b, a):
			return 1
		}
		return 0
	})
	return compatible
}

// Select returns the most specific route compatible with urlTokens,
// or nil when none is.
func (t *Table) Select(urlTokens []string) *CompiledRoute {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var best *CompiledRoute
	for _, r := range t.routes {
		if !r.Compatible(urlTokens) {
			continue
		}
		if best == nil || moreSpecific(r, best) {
			best = r
		}
	}
	return best
}

// Match tokenizes path, selects the best route and extracts its parameters.
// It returns nil when no route matches.
func (t *Table) Match(path string) *MatchResult {
	tokens := Tokenize(path)
	route := t.Select(tokens)
	if route == nil {
		return nil
	}
	return &MatchResult{
		Path:   path,
		Route:  route,
		Params: route.extractParams(tokens),
	}
}
