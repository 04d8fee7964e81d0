package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/toyz/lit/internal/diagnostics"
	"github.com/toyz/lit/pkg/lit"
)

// options are the persistent flags shared by every command
type options struct {
	configFile string
	verbose    bool
	out        io.Writer
}

func (o *options) diagnostics() *diagnostics.System {
	level := diagnostics.Info
	if o.verbose {
		level = diagnostics.Verbose
	}
	if o.out != nil {
		return diagnostics.NewWriter(level, o.out)
	}
	return diagnostics.New(level)
}

func (o *options) config() (*lit.ServerConfig, error) {
	return lit.LoadConfig(o.configFile)
}

// logger builds a development logger in verbose mode and a production one
// otherwise
func (o *options) logger() (*zap.Logger, error) {
	if o.verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{out: out}

	rootCmd := &cobra.Command{
		Use:   "lit",
		Short: "Serve and inspect lit applications",
		Long: `lit compiles a tree of modules, components and services into routes and
serves them on echo, gin, fiber, chi or gorilla/mux.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML config file (LIT_* environment variables override it)")
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose output and debug logging")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newRoutesCmd(opts))
	if out != nil {
		rootCmd.SetOut(out)
		rootCmd.SetErr(out)
	}
	return rootCmd
}

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
