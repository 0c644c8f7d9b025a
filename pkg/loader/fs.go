package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
)

// FS loads targets from a file system.
type FS struct {
	fsys    fs.FS
	maxSize int64
}

// FSOption configures an FS loader.
type FSOption func(*FS)

// WithFSMaxSize limits the size of a loaded file. Zero means no limit.
func WithFSMaxSize(n int64) FSOption {
	return func(l *FS) {
		l.maxSize = n
	}
}

// NewFS creates a loader reading from fsys.
//
// Example:
//
//	l := loader.NewFS(os.DirFS("fragments"))
func NewFS(fsys fs.FS, opts ...FSOption) *FS {
	l := &FS{fsys: fsys}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fetch implements Loader. Missing files and directories report
// StatusError 404; invalid names report 400.
func (l *FS) Fetch(ctx context.Context, resource string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, ok := cleanResource(resource)
	if !ok || !fs.ValidPath(name) {
		return nil, &StatusError{Resource: resource, Status: http.StatusBadRequest}
	}

	f, err := l.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &StatusError{Resource: resource, Status: http.StatusNotFound, Err: err}
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, &StatusError{Resource: resource, Status: http.StatusForbidden, Err: err}
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &StatusError{Resource: resource, Status: http.StatusNotFound}
	}

	return readAll(f, l.maxSize)
}
