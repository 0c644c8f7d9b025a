package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/AndreasArvidsson/jRouter/internal/config"
	"github.com/AndreasArvidsson/jRouter/pkg/bridge"
	"github.com/AndreasArvidsson/jRouter/pkg/devserver"
	"github.com/AndreasArvidsson/jRouter/pkg/metrics"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port        int
		host        string
		openBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the development server",
		Long: `Start the development server.

Every browser tab gets its own router driven over a WebSocket; all tabs
share the route table from jrouter.json.

Examples:
  jrouter serve
  jrouter serve --port=8080
  jrouter serve -C site --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.dir)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Dev.Port = port
			}
			if host != "" {
				cfg.Dev.Host = host
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cmd, cfg, openBrowser)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from jrouter.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from jrouter.json)")
	cmd.Flags().BoolVarP(&openBrowser, "open", "o", false, "Open browser on start")

	return cmd
}

// newServer builds the dev server described by cfg.
func newServer(cfg *config.Config) (*devserver.Server, error) {
	table, err := cfg.RouteTable()
	if err != nil {
		return nil, err
	}

	var (
		collector *metrics.Collector
		gatherer  prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		collector = metrics.New(metrics.WithRegistry(reg), metrics.WithNamespace(cfg.Metrics.Namespace))
		gatherer = reg
	}

	l, err := buildLoader(cfg, collector)
	if err != nil {
		return nil, err
	}

	var index []byte
	if path := cfg.IndexPath(); path != "" {
		if index, err = os.ReadFile(path); err != nil {
			return nil, err
		}
	}

	return devserver.New(devserver.Options{
		Addr:   cfg.DevAddress(),
		Table:  table,
		Loader: l,
		Client: bridge.ClientConfig{
			Target: cfg.Target,
			Navbar: cfg.Navbar,
		},
		Title:     cfg.Dev.Title,
		Index:     index,
		Manual:    !cfg.Initialize,
		StaticDir: cfg.StaticDir(),
		Metrics:   collector,
		Gatherer:  gatherer,
	})
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config, openBrowser bool) error {
	w := cmd.OutOrStdout()

	server, err := newServer(cfg)
	if err != nil {
		return err
	}

	printBanner(w)
	success(w, "Serving %d routes from %s loader", len(cfg.Routes), cfg.Loader.Kind)
	info(w, "Local:   %s", cfg.DevURL())
	if cfg.Metrics.Enabled {
		info(w, "Metrics: %s/metrics", cfg.DevURL())
	}
	if !cfg.Initialize {
		warn(w, "initialize is false: pages must call jRouter.init()")
	}
	fmt.Fprintln(w)

	if openBrowser {
		go openURL(cfg.DevURL())
	}

	return server.ListenAndServe(ctx)
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd

	switch {
	case commandExists("xdg-open"):
		cmd = exec.Command("xdg-open", url)
	case commandExists("open"):
		cmd = exec.Command("open", url)
	case commandExists("start"):
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}

	cmd.Start()
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
