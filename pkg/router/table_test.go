package router

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rohanthewiz/assert"
)

func TestTableSelectPrefersLiterals(t *testing.T) {
	table := NewTable()
	table.MustRegister("/{x}/{y}", "xy.html")
	table.MustRegister("/a/{id}", "a-id.html")
	table.MustRegister("/a/b", "ab.html")

	m := table.Match("/a/b")
	assert.True(t, m != nil)
	assert.Equal(t, m.Route.Pattern, "/a/b")
	assert.Equal(t, len(m.Params), 0)
}

func TestTableSelectPrefersConstrained(t *testing.T) {
	table := NewTable()
	table.MustRegister("/{id}", "any.html")
	table.MustRegister("/{id:\\d+}", "num.html")

	m := table.Match("/42")
	assert.Equal(t, m.Route.Target, "num.html")

	m = table.Match("/abc")
	assert.Equal(t, m.Route.Target, "any.html")
}

func TestTableParamCountBreaksLiteralTie(t *testing.T) {
	table := NewTable()
	table.MustRegister("/{x}/c/d", "one-param.html")
	table.MustRegister("/ab/{x}/{y}", "two-params.html")

	// Both carry two literal characters; the route with more parameters wins.
	m := table.Match("/ab/c/d")
	assert.Equal(t, m.Route.Target, "two-params.html")
	assert.Equal(t, m.Params["x"], "c")
	assert.Equal(t, m.Params["y"], "d")
}

func TestTableRegistrationOrderBreaksTies(t *testing.T) {
	table := NewTable()
	table.MustRegister("/{a}", "first.html")
	table.MustRegister("/{b}", "second.html")

	m := table.Match("/x")
	assert.Equal(t, m.Route.Target, "first.html")
	assert.Equal(t, m.Params["a"], "x")

	cands := table.Candidates(Tokenize("/x"))
	assert.Equal(t, len(cands), 2)
	assert.Equal(t, cands[0].Target, "first.html")
	assert.Equal(t, cands[1].Target, "second.html")
}

func TestTableParameterExtraction(t *testing.T) {
	table := NewTable()
	table.MustRegister("/user/{id}/post/{postId:\\d+}", "post.html")

	m := table.Match("/user/7/post/99")
	assert.True(t, m != nil)
	assert.Equal(t, m.Path, "/user/7/post/99")
	assert.Equal(t, len(m.Params), 2)
	assert.Equal(t, m.Params["id"], "7")
	assert.Equal(t, m.Params["postId"], "99")

	v, ok := m.Param("id")
	assert.True(t, ok)
	assert.Equal(t, v, "7")

	_, ok = m.Param("missing")
	assert.False(t, ok)

	var none *MatchResult
	_, ok = none.Param("id")
	assert.False(t, ok)
}

func TestTableNoMatch(t *testing.T) {
	table := NewTable()
	table.MustRegister("/a", "a.html")

	assert.True(t, table.Match("/b") == nil)
	assert.True(t, table.Select(Tokenize("/a/b")) == nil)
	assert.Equal(t, len(table.Candidates(Tokenize("/b"))), 0)
}

func TestTableNotFoundPattern(t *testing.T) {
	table := NewTable()
	table.MustRegister(NotFoundPattern, "404.html")

	m := table.Match(NotFoundPattern)
	assert.Equal(t, m.Route.Target, "404.html")
}

func TestTableCandidatesOrder(t *testing.T) {
	table := NewTable()
	table.MustRegister("/{x}/{y}", "xy.html")
	table.MustRegister("/a/{id}", "a-id.html")
	table.MustRegister("/a/b", "ab.html")
	table.MustRegister("/{x}/{y:b}", "xy-b.html")

	var got []string
	for _, r := range table.Candidates(Tokenize("/a/b")) {
		got = append(got, r.Target)
	}
	assert.Equal(t, fmt.Sprint(got), "[ab.html a-id.html xy-b.html xy.html]")

	// Select agrees with the head of Candidates.
	assert.Equal(t, table.Select(Tokenize("/a/b")).Target, got[0])
}

func TestTableRegisterError(t *testing.T) {
	table := NewTable()
	_, err := table.Register("", "x.html")
	assert.NotEqual(t, err, nil)
	assert.Equal(t, table.Len(), 0)
}

func TestTableMustRegisterPanics(t *testing.T) {
	defer func() {
		assert.NotEqual(t, recover(), nil)
	}()
	NewTable().MustRegister("/a", "")
}

func TestTableRoutesIsCopy(t *testing.T) {
	table := NewTable()
	table.MustRegister("/a", "a.html")
	table.MustRegister("/b", "b.html")

	routes := table.Routes()
	assert.Equal(t, len(routes), 2)
	assert.Equal(t, routes[0].Seq, 0)
	assert.Equal(t, routes[1].Seq, 1)

	routes[0] = nil
	assert.True(t, table.Routes()[0] != nil)
}

func TestTableConcurrentRegisterAndMatch(t *testing.T) {
	table := NewTable()
	table.MustRegister("/items/{id}", "item.html")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			table.MustRegister(fmt.Sprintf("/static/%d", i), "static.html")
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if table.Match("/items/1") == nil {
					t.Error("lost match during concurrent registration")
					return
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, table.Len(), 9)
	seen := map[int]bool{}
	for _, r := range table.Routes() {
		seen[r.Seq] = true
	}
	assert.Equal(t, len(seen), 9)
}
