package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/toyz/lit/internal/demo"
	"github.com/toyz/lit/pkg/lit"
	"github.com/toyz/lit/pkg/lit/adapters"
	"github.com/toyz/lit/pkg/lit/middleware"
)

type serveOptions struct {
	*options
	port        string
	adapter     string
	metricsAddr string
	cors        []string
}

func newServeCmd(opts *options) *cobra.Command {
	so := &serveOptions{options: opts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sample application",
		Long: `Compile the people and places sample application and serve it until
interrupted. The port is taken from PORT, then port, then --port, then the
config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return so.run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&so.port, "port", "", "Port to listen on")
	cmd.Flags().StringVar(&so.adapter, "adapter", "", "Router adapter: echo, gin, fiber, chi or mux")
	cmd.Flags().StringVar(&so.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	cmd.Flags().StringSliceVar(&so.cors, "cors", nil, "Allowed CORS origins (echo adapter only)")
	return cmd
}

func (so *serveOptions) run(ctx context.Context) error {
	diag := so.diagnostics()

	cfg, err := so.config()
	if err != nil {
		return err
	}
	if so.adapter != "" {
		cfg.Adapter = so.adapter
	}

	logger, err := so.logger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	server, err := adapters.New(cfg.Adapter)
	if err != nil {
		return err
	}
	if len(so.cors) > 0 {
		if echoServer, ok := server.(*adapters.EchoAdapter); ok {
			echoServer.EnableCORS(so.cors...)
		} else {
			diag.Warn("--cors is only supported by the echo adapter, ignoring")
		}
	}

	metrics, err := middleware.NewMetrics(prometheus.NewRegistry())
	if err != nil {
		return err
	}
	chain := append(middleware.Defaults(cfg, logger), metrics.Middleware())

	if so.metricsAddr != "" {
		stop := serveMetrics(so.metricsAddr, metrics, logger)
		defer stop()
		diag.Verbose("metrics available on %s/metrics", so.metricsAddr)
	}

	diag.Verbose("adapter: %s", server.Name())
	store := lit.NewStore()
	compiler := lit.NewCompiler(store, server,
		lit.WithConfig(cfg),
		lit.WithLogger(logger),
		lit.WithConsole(lit.NewDiagnosticsConsole(diag)),
		lit.WithMiddleware(chain...),
	)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return compiler.Run(ctx, demo.AppModule(store), so.port)
}

// serveMetrics exposes the metrics handler on addr and returns a function
// that stops it
func serveMetrics(addr string, metrics *middleware.Metrics, logger *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
