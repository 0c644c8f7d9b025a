// Package loader provides content loaders for route targets.
//
// Every loader implements navigation.ContentLoader:
//
//	Fetch(ctx context.Context, resource string) ([]byte, error)
//
// Three backends are available:
//
//   - FS reads targets from an fs.FS, typically os.DirFS or an embed.FS.
//   - HTTP fetches targets relative to a base URL using a fasthttp client.
//   - S3 reads targets as objects under a bucket prefix.
//
// A failed fetch that carries a status (missing file, HTTP 404, S3 NoSuchKey)
// is reported as a *StatusError so callers can tell "not found" from
// transport failures:
//
//	var se *loader.StatusError
//	if errors.As(err, &se) && se.Status == 404 { ... }
//
// Instrument wraps any loader with Prometheus metrics and OpenTelemetry spans.
package loader
