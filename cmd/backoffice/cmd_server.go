package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vitrine/backoffice/internal/kernel"
	"github.com/vitrine/backoffice/internal/server"
	"github.com/vitrine/backoffice/pkg/router"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server (and gRPC when GRPC_PORT is set)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := kernel.New(kernel.Deps{})
		if err != nil {
			return err
		}
		return printRoutes(cmd.OutOrStdout(), k.Routes())
	},
}

func printRoutes(out io.Writer, routes []router.Route) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, "------\t----\t----")
	for _, r := range routes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Method, r.Path, r.Name)
	}
	return w.Flush()
}
