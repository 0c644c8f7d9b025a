package router

import "testing"

func TestCompatible(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"exact literal", "/a/b", "/a/b", true},
		{"literal mismatch", "/a/b", "/a/c", false},
		{"literal is case sensitive", "/about", "/About", false},
		{"shorter path", "/a/b", "/a", false},
		{"longer path", "/a/b", "/a/b/c", false},
		{"root matches root", "/", "/", true},
		{"root matches empty", "/", "", true},
		{"unconstrained accepts anything", "/u/{id}", "/u/anything-at-all", true},
		{"constraint satisfied", "/u/{id:\\d+}", "/u/42", true},
		{"constraint violated", "/u/{id:\\d+}", "/u/abc", false},
		{"constraint must match whole segment", "/u/{id:\\d+}", "/u/42abc", false},
		{"alternation anchored as a group", "/c/{color:red|blue}", "/c/redish", false},
		{"alternation second branch", "/c/{color:red|blue}", "/c/blue", true},
		{"redundant separators ignored", "/a/{x}", "//a///y/", true},
		{"no wildcard segments", "/files/{path}", "/files/a/b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := MustCompile(tt.pattern, "page.html")
			if got := r.Compatible(Tokenize(tt.path)); got != tt.want {
				t.Errorf("Compatible(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
			}
		})
	}
}

func TestCompatibleRejectsEmptySegmentForParam(t *testing.T) {
	r := MustCompile("/u/{id}", "page.html")
	if r.Compatible([]string{"u", ""}) {
		t.Error("unconstrained parameter accepted an empty segment")
	}
}

func TestMoreSpecific(t *testing.T) {
	lit := &CompiledRoute{LiteralChars: 2}
	params := &CompiledRoute{LiteralChars: 1, Params: 2}
	fewer := &CompiledRoute{LiteralChars: 1, Params: 1}
	constrained := &CompiledRoute{LiteralChars: 1, Params: 1, ConstrainedParams: 1}
	first := &CompiledRoute{Seq: 0}
	second := &CompiledRoute{Seq: 1}

	tests := []struct {
		name string
		a, b *CompiledRoute
	}{
		{"literal chars first", lit, params},
		{"then parameter count", params, fewer},
		{"then constrained count", constrained, fewer},
		{"then registration order", first, second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !moreSpecific(tt.a, tt.b) {
				t.Error("moreSpecific(a, b) = false")
			}
			if moreSpecific(tt.b, tt.a) {
				t.Error("moreSpecific(b, a) = true")
			}
		})
	}

	if moreSpecific(first, first) {
		t.Error("a route is not more specific than itself")
	}
}
