package main

import (
	"os"

	"github.com/AndreasArvidsson/jRouter/internal/config"
	"github.com/AndreasArvidsson/jRouter/internal/errors"
	"github.com/AndreasArvidsson/jRouter/pkg/loader"
	"github.com/AndreasArvidsson/jRouter/pkg/metrics"
)

// buildLoader creates the content loader selected by cfg, instrumented
// with collector.
func buildLoader(cfg *config.Config, collector *metrics.Collector) (loader.Loader, error) {
	var l loader.Loader

	switch cfg.Loader.Kind {
	case config.LoaderFS:
		l = loader.NewFS(os.DirFS(cfg.LoaderDir()), loader.WithFSMaxSize(cfg.Loader.MaxSize))

	case config.LoaderHTTP:
		timeout, err := cfg.HTTPTimeout()
		if err != nil {
			return nil, errors.New("E006").Wrap(err)
		}
		l = loader.NewHTTP(cfg.Loader.BaseURL,
			loader.WithTimeout(timeout),
			loader.WithBodyLimit(int(cfg.Loader.MaxSize)),
		)

	case config.LoaderS3:
		client := loader.NewS3Client(cfg.Loader.Region, cfg.Loader.Endpoint)
		l = loader.NewS3(client, cfg.Loader.Bucket, cfg.Loader.Prefix).WithMaxSize(cfg.Loader.MaxSize)

	default:
		return nil, errors.New("E006").WithDetail("Unknown loader kind " + cfg.Loader.Kind)
	}

	return loader.Instrument(l, loader.InstrumentConfig{
		Backend: cfg.Loader.Kind,
		Metrics: collector,
	}), nil
}
