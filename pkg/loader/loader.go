package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// Loader fetches the resource a route targets.
type Loader interface {
	Fetch(ctx context.Context, resource string) ([]byte, error)
}

// StatusError reports a fetch that failed with a status.
// Status follows HTTP semantics for every backend.
type StatusError struct {
	Resource string
	Status   int
	Err      error
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("fetch %s: status %d %s", e.Resource, e.Status, http.StatusText(e.Status))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// NotFound reports whether err is a StatusError with status 404.
func NotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

// cleanResource turns a route target into a slash-separated relative name.
// It returns false for targets escaping the root.
func cleanResource(resource string) (string, bool) {
	name := strings.TrimPrefix(resource, "/")
	if name == "" || strings.Contains(name, "\\") {
		return "", false
	}
	name = path.Clean(name)
	if name == ".." || strings.HasPrefix(name, "../") {
		return "", false
	}
	return name, true
}

// readAll drains r through a pooled buffer and returns a private copy.
func readAll(r io.Reader, limit int64) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	n, err := buf.ReadFrom(r)
	if err != nil {
		return nil, err
	}
	if limit > 0 && n > limit {
		return nil, fmt.Errorf("content exceeds %d bytes", limit)
	}

	return append([]byte(nil), buf.B...), nil
}
