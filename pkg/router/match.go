package router

// Compatible reports whether the route can serve a path split into urlTokens.
// Token counts must be equal; literals must match exactly; constrained
// parameters must fully match their expression; unconstrained parameters
// accept any non-empty segment.
func (r *CompiledRoute) Compatible(urlTokens []string) bool {
	if len(r.Tokens) != len(urlTokens) {
		return false
	}

	for i, tok := range r.Tokens {
		seg := urlTokens[i]
		switch {
		case !tok.IsParameter:
			if tok.Value != seg {
				return false
			}
		case tok.Constraint != nil:
			if !tok.Constraint.MatchString(seg) {
				return false
			}
		default:
			if seg == "" {
				return false
			}
		}
	}

	return true
}

// extractParams pairs each parameter token with the URL token at its index.
func (r *CompiledRoute) extractParams(urlTokens []string) map[string]string {
	params := make(map[string]string, r.Params)
	for i, tok := range r.Tokens {
		if tok.IsParameter {
			params[tok.Value] = urlTokens[i]
		}
	}
	return params
}

// moreSpecific reports whether a ranks strictly before b.
func moreSpecific(a, b *CompiledRoute) bool {
	if a.LiteralChars != b.LiteralChars {
		return a.LiteralChars > b.LiteralChars
	}
	if a.Params != b.Params {
		return a.Params > b.Params
	}
	if a.ConstrainedParams != b.ConstrainedParams {
		return a.ConstrainedParams > b.ConstrainedParams
	}
	return a.Seq < b.Seq
}
