package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/AndreasArvidsson/jRouter/internal/config"
	"github.com/AndreasArvidsson/jRouter/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
     _ ____             _
    (_)  _ \ ___  _   _| |_ ___ _ __
    | | |_) / _ \| | | | __/ _ \ '__|
    | |  _ < (_) | |_| | ||  __/ |
   _/ |_| \_\___/ \__,_|\__\___|_|
  |__/
`

// globalFlags are shared by every command.
type globalFlags struct {
	dir     string
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "jrouter",
		Short: "Fragment router for single-page sites",
		Long: `jRouter maps the address fragment of a page to a registered route,
extracts its parameters and loads the route's content into the page.

Routes are declared in jrouter.json:

  {"path": "/users/{id:\\d+}", "file": "user.html"}

The dev server drives connected browsers over a WebSocket, and the
match, routes and resolve commands inspect a route table offline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), flags.verbose)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.dir, "dir", "C", "", "Site directory containing jrouter.json (default: search upward from the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		initCmd(),
		serveCmd(flags),
		matchCmd(flags),
		routesCmd(flags),
		resolveCmd(flags),
		versionCmd(),
	)

	return rootCmd
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// loadConfig loads and validates jrouter.json from dir, or from the nearest
// parent of the working directory when dir is empty.
func loadConfig(dir string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if dir != "" {
		cfg, err = config.Load(dir)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Routes) == 0 {
		return nil, errors.New("E402").
			WithDetail("No routes in " + cfg.Path()).
			WithSuggestion(`Add routes such as {"path": "/", "file": "home.html"}`)
	}
	return cfg, nil
}

// printBanner prints the jRouter ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
