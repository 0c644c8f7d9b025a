package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AndreasArvidsson/jRouter/pkg/router"
)

func routesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List registered routes",
		Long: `List the routes of jrouter.json in registration order together with
the counters that decide specificity: literal characters, parameters and
constrained parameters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.dir)
			if err != nil {
				return err
			}
			table, err := cfg.RouteTable()
			if err != nil {
				return err
			}
			return printRoutes(cmd.OutOrStdout(), table)
		},
	}
}

func printRoutes(w io.Writer, table *router.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tPATTERN\tTARGET\tLITERAL\tPARAMS\tCONSTRAINED")
	for _, route := range table.Routes() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n",
			route.Seq, route.Pattern, route.Target,
			route.LiteralChars, route.Params, route.ConstrainedParams)
	}
	return tw.Flush()
}
