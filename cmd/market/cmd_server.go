package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/market/config"
	"github.com/shashiranjanraj/market/internal/kernel"
	"github.com/shashiranjanraj/market/internal/server"
)

// market serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}

		ctx, stop := server.WithSignals(context.Background())
		defer stop()

		store := bootCache(ctx)
		defer store.Close()

		k := kernel.NewHTTPKernel(bootServices(db, store), kernelOptions())
		return server.Start(ctx, ":"+config.AppPort(), k.Handler())
	},
}

// market route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		k := kernel.NewHTTPKernel(bootServices(nil, nil), kernelOptions())

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range k.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
