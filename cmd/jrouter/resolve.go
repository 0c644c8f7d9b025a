package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndreasArvidsson/jRouter/internal/errors"
	"github.com/AndreasArvidsson/jRouter/pkg/navigation"
	"github.com/AndreasArvidsson/jRouter/pkg/routepath"
)

func resolveCmd(flags *globalFlags) *cobra.Command {
	var load bool

	cmd := &cobra.Command{
		Use:   "resolve <current> <target>",
		Short: "Resolve a relative path and optionally load it",
		Long: `Resolve target against the current location the way SetPath does:
"./x" appends to the current path and each "../" drops one segment.

With --load the resolved path is navigated in an in-memory router using
jrouter.json, and the rendered content is printed.

Examples:
  jrouter resolve /a/b/c ./d      # /a/b/c/d
  jrouter resolve /a/b/c ../d     # /a/b/d
  jrouter resolve --load /users/7 ../8`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, target := args[0], args[1]
			w := cmd.OutOrStdout()

			if !load {
				resolved, err := routepath.Resolve(current, target)
				if err != nil {
					return errors.New("E202").WithDetailf("path %q", target).Wrap(err)
				}
				fmt.Fprintln(w, resolved)
				return nil
			}

			cfg, err := loadConfig(flags.dir)
			if err != nil {
				return err
			}
			table, err := cfg.RouteTable()
			if err != nil {
				return err
			}
			l, err := buildLoader(cfg, nil)
			if err != nil {
				return err
			}

			location := navigation.NewMemoryLocation(current)
			nav, err := navigation.New(&navigation.Config{
				Table:    table,
				Location: location,
				Loader:   l,
				Renderer: navigation.NewWriterRenderer(w),
			})
			if err != nil {
				return err
			}

			// Not started: SetPath only resolves and writes the location.
			resolved, err := nav.SetPath(target)
			if err != nil {
				return err
			}

			res := nav.Dispatch(cmd.Context(), resolved)
			if res.Err != nil {
				return res.Err
			}
			if res.Match != nil {
				info(cmd.ErrOrStderr(), "%s -> %s (%s)", resolved, res.Match.Route.Target, res.Outcome)
			} else {
				info(cmd.ErrOrStderr(), "%s (%s)", resolved, res.Outcome)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&load, "load", "l", false, "Navigate to the resolved path and print the rendered content")

	return cmd
}
