package router

import (
	"regexp"
	"strings"

	"github.com/AndreasArvidsson/jRouter/internal/errors"
)

// NotFoundPattern is the reserved pattern loaded when nothing else matches.
const NotFoundPattern = "404"

// RouteToken is one segment of a compiled route.
type RouteToken struct {
	// IsParameter reports whether the segment captures a value.
	IsParameter bool

	// Value is the literal text, or the parameter name for parameters.
	Value string

	// Constraint restricts the values a parameter accepts. Always nil for
	// literal tokens.
	Constraint *regexp.Regexp
}

// CompiledRoute is a registered pattern ready for matching.
// It is never modified after Compile returns.
type CompiledRoute struct {
	// Pattern is the trimmed source pattern (e.g., "/users/{id:\d+}").
	Pattern string

	// Tokens are the pattern's segments in order.
	Tokens []RouteToken

	// Target is the trimmed resource to load on match.
	Target string

	// LiteralChars is the summed length of all literal tokens.
	LiteralChars int

	// Params is the number of parameter tokens.
	Params int

	// ConstrainedParams is the number of parameter tokens with a constraint.
	ConstrainedParams int

	// Seq is the registration order within a Table, starting at 0.
	Seq int
}

// Compile turns a raw pattern into a CompiledRoute.
// It fails with an E101 error when pattern or target is blank, E102 when a
// constraint does not compile and E103 when a parameter has no name.
func Compile(pattern, target string) (*CompiledRoute, error) {
	pattern = strings.TrimSpace(pattern)
	target = strings.TrimSpace(target)
	if pattern == "" || target == "" {
		return nil, errors.New("E101").
			WithDetailf("pattern %q, target %q", pattern, target).
			WithSuggestion(`Register("/users/{id}", "user.html")`)
	}

	segments := Tokenize(pattern)
	route := &CompiledRoute{
		Pattern: pattern,
		Tokens:  make([]RouteToken, 0, len(segments)),
		Target:  target,
	}

	for _, seg := range segments {
		if !isParameter(seg) {
			route.LiteralChars += len(seg)
			route.Tokens = append(route.Tokens, RouteToken{Value: seg})
			continue
		}

		tok, err := compileParameter(seg)
		if err != nil {
			return nil, err.WithDetailf("segment %q in pattern %q", seg, pattern)
		}
		route.Params++
		if tok.Constraint != nil {
			route.ConstrainedParams++
		}
		route.Tokens = append(route.Tokens, tok)
	}

	return route, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern, target string) *CompiledRoute {
	r, err := Compile(pattern, target)
	if err != nil {
		panic(err)
	}
	return r
}

// isParameter reports whether seg is wrapped in braces end to end.
func isParameter(seg string) bool {
	return len(seg) >= 2 && seg[0] == '{' && seg[len(seg)-1] == '}'
}

// compileParameter parses "{name}" or "{name:regex}".
func compileParameter(seg string) (RouteToken, *errors.RouterError) {
	inner := seg[1 : len(seg)-1]
	name, expr, constrained := strings.Cut(inner, ":")
	if name == "" {
		return RouteToken{}, errors.New("E103")
	}

	tok := RouteToken{IsParameter: true, Value: name}
	if !constrained {
		return tok, nil
	}

	if expr == "" {
		return RouteToken{}, errors.New("E102").WithDetail("empty constraint")
	}

	// The constraint must cover the whole segment.
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return RouteToken{}, errors.New("E102").Wrap(err)
	}
	tok.Constraint = re
	return tok, nil
}

// String returns the route's source pattern.
func (r *CompiledRoute) String() string {
	return r.Pattern
}
