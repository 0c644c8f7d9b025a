// Package router compiles route patterns and selects the best match for a path.
//
// The router provides:
//   - Path tokenizing that ignores leading, trailing and repeated separators
//   - Pattern compilation into literal and parameter tokens
//   - Optional regular-expression constraints on parameters
//   - Deterministic best-match selection by specificity
//   - Parameter extraction and typed decoding
//
// # Patterns
//
// A pattern is a slash separated list of segments. A segment wrapped in
// braces is a parameter, anything else is matched literally:
//
//	/users             literal
//	/users/{id}        parameter "id", any non-empty segment
//	/users/{id:\d+}    parameter "id", segment must fully match \d+
//
// The pattern "404" is reserved as the not-found fallback route.
//
// # Specificity
//
// When several routes match a path the winner is chosen by, in order:
//
//  1. more literal characters
//  2. more parameters
//  3. more constrained parameters
//  4. earlier registration
//
// # Usage
//
//	t := router.NewTable()
//	t.Register("/users/{id}", "user.html")
//	t.Register("/users/new", "new-user.html")
//
//	m := t.Match("/users/42")
//	// m.Route.Target == "user.html", m.Params["id"] == "42"
package router
