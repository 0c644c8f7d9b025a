package router

import (
	"strings"
	"testing"

	"github.com/rohanthewiz/assert"

	"github.com/AndreasArvidsson/jRouter/internal/errors"
)

// slug implements encoding.TextUnmarshaler.
type slug string

func (s *slug) UnmarshalText(b []byte) error {
	*s = slug(strings.ToLower(string(b)))
	return nil
}

func TestMatchResultDecode(t *testing.T) {
	table := NewTable()
	table.MustRegister("/user/{id}/post/{postId:\\d+}", "post.html")

	m := table.Match("/user/7/post/99")
	if m == nil {
		t.Fatal("expected match")
	}

	var p struct {
		ID     string `param:"id"`
		PostID int    `param:"postId"`
	}
	if err := m.Decode(&p); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	assert.Equal(t, p.ID, "7")
	assert.Equal(t, p.PostID, 99)

	var nilMatch *MatchResult
	if err := nilMatch.Decode(&p); err != nil {
		t.Errorf("nil Decode error: %v", err)
	}
}

func TestDecodeParamsKinds(t *testing.T) {
	type embedded struct {
		Lang string `param:"lang"`
	}
	var p struct {
		embedded
		ID    int64   `param:"id"`
		Count uint8   `param:"count"`
		Ratio float64 `param:"ratio"`
		On    bool    `param:"on"`
		Page  *int    `param:"page"`
		Slug  slug    `param:"slug"`
		Ref   *slug   `param:"ref"`
		Keep  string  `param:"absent"`
		Plain string
	}
	p.Keep = "kept"
	p.Plain = "untouched"

	params := map[string]string{
		"lang":  "sv",
		"id":    "9223372036854775807",
		"count": "255",
		"ratio": "0.5",
		"on":    "true",
		"page":  "3",
		"slug":  "Hello-World",
		"ref":   "ABC",
		"Plain": "ignored",
	}
	if err := DecodeParams(params, &p); err != nil {
		t.Fatalf("DecodeParams() error: %v", err)
	}

	assert.Equal(t, p.Lang, "sv")
	assert.Equal(t, p.ID, int64(9223372036854775807))
	assert.Equal(t, p.Count, uint8(255))
	assert.Equal(t, p.Ratio, 0.5)
	assert.True(t, p.On)
	assert.True(t, p.Page != nil && *p.Page == 3)
	assert.Equal(t, p.Slug, slug("hello-world"))
	assert.True(t, p.Ref != nil && *p.Ref == "abc")
	assert.Equal(t, p.Keep, "kept")
	assert.Equal(t, p.Plain, "untouched")
}

func TestDecodeParamsErrors(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		target any
		want   string
	}{
		{"invalid int", map[string]string{"id": "abc"}, &struct {
			ID int `param:"id"`
		}{}, `"id"`},
		{"uint overflow", map[string]string{"n": "256"}, &struct {
			N uint8 `param:"n"`
		}{}, `"n"`},
		{"invalid bool", map[string]string{"b": "maybe"}, &struct {
			B bool `param:"b"`
		}{}, `"b"`},
		{"unsupported kind", map[string]string{"s": "a"}, &struct {
			S []string `param:"s"`
		}{}, "unsupported"},
		{"not pointer", nil, struct{}{}, "struct pointer"},
		{"pointer to non-struct", nil, new(int), "struct pointer"},
		{"nil", nil, nil, "struct pointer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DecodeParams(tt.params, tt.target)
			if !errors.HasCode(err, "E203") {
				t.Fatalf("error = %v, want E203", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %v does not mention %s", err, tt.want)
			}
		})
	}
}

func TestDecodeParamsConstrainedRoute(t *testing.T) {
	table := NewTable()
	table.MustRegister(`/items/{id:\d+}`, "item.html")
	table.MustRegister("/items/{name}", "item-by-name.html")

	var p struct {
		ID uint `param:"id"`
	}

	if err := table.Match("/items/42").Decode(&p); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	assert.Equal(t, p.ID, uint(42))

	// The unconstrained route captures "name", so ID is left alone.
	if err := table.Match("/items/latest").Decode(&p); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	assert.Equal(t, p.ID, uint(42))
}
