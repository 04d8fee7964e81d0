package main

import (
	"github.com/spf13/cobra"

	"github.com/toyz/lit/internal/demo"
	"github.com/toyz/lit/pkg/lit"
	"github.com/toyz/lit/pkg/lit/adapters"
)

func newRoutesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the compiled route table of the sample application",
		RunE: func(cmd *cobra.Command, args []string) error {
			diag := opts.diagnostics()

			cfg, err := opts.config()
			if err != nil {
				return err
			}
			server, err := adapters.New(cfg.Adapter)
			if err != nil {
				return err
			}

			store := lit.NewStore()
			compiler := lit.NewCompiler(store, server, lit.WithConfig(cfg), lit.WithConsole(lit.QuietConsole()))
			if err := compiler.Mount(demo.AppModule(store)); err != nil {
				return err
			}

			routes := compiler.Routes()
			components := make(map[string]struct{})
			diag.Section("Routes")
			for _, r := range routes {
				components[r.Component] = struct{}{}
				diag.List("%-7s %-24s %s.%s (%s)", r.Method, r.Path, r.Component, r.Handler, r.Shape)
				diag.Verbose("%s %s takes %d argument(s)", r.Method, r.Path, r.Shape.Arity())
				if r.Produces != "" {
					diag.Verbose("%s %s produces %s", r.Method, r.Path, r.Produces)
				}
			}
			diag.Summary("Compiled", map[string]interface{}{
				"Routes":     len(routes),
				"Components": len(components),
				"Adapter":    server.Name(),
			})
			return nil
		},
	}
}
