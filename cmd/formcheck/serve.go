package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcheck/components/validator"
	"github.com/goliatone/go-formcheck/pkg/engine"
)

type serveFlags struct {
	addr string
	mode string
}

func newServeCmd(a *app) *cobra.Command {
	flags := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validation API",
		Long: `Start an HTTP server exposing:

  POST /api/validate   validate a JSON or YAML document
                       (?autofix=1&mode=strict&format=json|yaml|text|html)
  GET  /metrics        Prometheus metrics (unless serve.disableMetrics is set)
  GET  /healthz        liveness probe

Examples:
  formcheck serve --addr :8080
  curl -s --data-binary @form.json 'localhost:8080/api/validate?autofix=1'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, a, flags)
		},
	}
	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "default validation mode")
	return cmd
}

// newServeMux builds the server routes on a private registry.
func newServeMux(a *app, opts validatorOptions) (*http.ServeMux, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	component, err := validator.New(
		validator.WithEngineOptions(opts.opts),
		validator.WithCacheSize(a.cfg.Serve.CacheSize),
		validator.WithMaxBodyBytes(a.cfg.Serve.MaxBodyBytes),
		validator.WithRegisterer(registry),
	)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	if _, err := component.RegisterRoutes(mux, ""); err != nil {
		return nil, err
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	if opts.metrics {
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	return mux, nil
}

func runServe(cmd *cobra.Command, a *app, flags *serveFlags) error {
	engineOpts, err := a.engineOptions(cmd, flags.mode)
	if err != nil {
		return err
	}
	// The engine default is per request; autofix comes from the query.
	engineOpts.AutoFix = false

	mux, err := newServeMux(a, validatorOptions{opts: engineOpts, metrics: !a.cfg.Serve.DisableMetrics})
	if err != nil {
		return err
	}

	addr := a.cfg.Serve.Addr
	if flags.addr != "" {
		addr = flags.addr
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       a.cfg.Serve.ReadTimeout,
	}

	ctx := cmd.Context()
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("validation server listening", "addr", listener.Addr().String())
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down validation server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

type validatorOptions struct {
	opts    engine.Options
	metrics bool
}
