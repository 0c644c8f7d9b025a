package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AndreasArvidsson/jRouter/pkg/router"
)

func matchCmd(flags *globalFlags) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "match <path>",
		Short: "Show which route a path selects",
		Long: `Show the route a path selects and the parameters it extracts.

With --all every compatible route is listed, most specific first.
When nothing matches, the "404" route or the default not-found message
is reported, as the router would render it.

Examples:
  jrouter match /users/7
  jrouter match --all /users/new`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.dir)
			if err != nil {
				return err
			}
			table, err := cfg.RouteTable()
			if err != nil {
				return err
			}
			runMatch(cmd.OutOrStdout(), table, args[0], all)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "List every compatible route in selection order")

	return cmd
}

func runMatch(w io.Writer, table *router.Table, path string, all bool) {
	if all {
		candidates := table.Candidates(router.Tokenize(path))
		if len(candidates) == 0 {
			info(w, "no compatible routes for %q", path)
		}
		for i, route := range candidates {
			fmt.Fprintf(w, "%d. %s -> %s (literal=%d params=%d constrained=%d seq=%d)\n",
				i+1, route.Pattern, route.Target,
				route.LiteralChars, route.Params, route.ConstrainedParams, route.Seq)
		}
		return
	}

	m := table.Match(path)
	if m == nil {
		if fallback := table.Match(router.NotFoundPattern); fallback != nil {
			warn(w, "no route matched %q; fallback %s", path, fallback.Route.Target)
			return
		}
		warn(w, "no route matched %q; default not-found message", path)
		return
	}

	success(w, "%s -> %s", m.Route.Pattern, m.Route.Target)
	for _, line := range formatParams(m.Params) {
		info(w, "%s", line)
	}
}

// formatParams renders params as sorted "name = value" lines.
func formatParams(params map[string]string) []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	slices.Sort(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, name+" = "+strings.TrimSpace(params[name]))
	}
	return lines
}
