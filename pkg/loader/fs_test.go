package loader

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/rohanthewiz/assert"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"home.html":       {Data: []byte("<p>home</p>")},
		"users/view.html": {Data: []byte("<p>user</p>")},
		"big.html":        {Data: make([]byte, 64)},
	}
}

func TestFSFetch(t *testing.T) {
	l := NewFS(testFS())
	ctx := context.Background()

	body, err := l.Fetch(ctx, "home.html")
	assert.Nil(t, err)
	assert.Equal(t, string(body), "<p>home</p>")

	body, err = l.Fetch(ctx, "/users/view.html")
	assert.Nil(t, err)
	assert.Equal(t, string(body), "<p>user</p>")

	body, err = l.Fetch(ctx, "users/../home.html")
	assert.Nil(t, err)
	assert.Equal(t, string(body), "<p>home</p>")
}

func TestFSFetchErrors(t *testing.T) {
	l := NewFS(testFS())
	ctx := context.Background()

	tests := []struct {
		resource string
		status   int
	}{
		{"missing.html", 404},
		{"users", 404},
		{"../etc/passwd", 400},
		{"a\\b.html", 400},
		{"", 400},
	}

	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			_, err := l.Fetch(ctx, tt.resource)
			var se *StatusError
			assert.True(t, errors.As(err, &se))
			assert.Equal(t, se.Status, tt.status)
			assert.Equal(t, se.Resource, tt.resource)
		})
	}

	_, err := l.Fetch(ctx, "missing.html")
	assert.True(t, NotFound(err))
	assert.Contains(t, err.Error(), "status 404 Not Found")
}

func TestFSMaxSize(t *testing.T) {
	l := NewFS(testFS(), WithFSMaxSize(32))

	_, err := l.Fetch(context.Background(), "big.html")
	assert.True(t, err != nil)
	assert.Contains(t, err.Error(), "exceeds 32 bytes")

	body, err := l.Fetch(context.Background(), "home.html")
	assert.Nil(t, err)
	assert.Equal(t, len(body), 11)
}

func TestFSCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFS(testFS()).Fetch(ctx, "home.html")
	assert.True(t, errors.Is(err, context.Canceled))
}
