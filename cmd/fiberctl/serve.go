package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/fiber/internal/config"
	"github.com/vango-dev/fiber/internal/scene"
	"github.com/vango-dev/fiber/pkg/fiber"
	"github.com/vango-dev/fiber/pkg/host"
	"github.com/vango-dev/fiber/pkg/inspect"
	"github.com/vango-dev/fiber/pkg/middleware"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [scene.yaml]",
		Short: "Serve a scene with the inspector",
		Long: `Render a scene into an in-memory host tree and serve the inspector.

Routes:
  GET  /tree, /tree.txt, /fibers    committed host and fiber trees
  POST /nodes/{id}/events/{event}   dispatch an event by node number
  GET  /ws                          live commit stream
  GET  /metrics                     Prometheus metrics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			path := cfg.ScenePath()
			if len(args) == 1 {
				path = args[0]
			}
			if addr == "" {
				addr = cfg.InspectorAddress()
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, flags, cfg, path, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from fiber.json)")

	return cmd
}

func runServe(ctx context.Context, flags *globalFlags, cfg *config.Config, path, addr string) error {
	logger := flags.logger(os.Stderr, cfg)

	opts := inspect.Options{
		Logger:      logger,
		Slice:       cfg.SliceDuration(),
		CheckOrigin: inspect.AllowOrigins(cfg.Inspector.AllowedOrigins...),
		SchedulerOptions: []fiber.Option{
			fiber.WithMinRemaining(cfg.MinRemainingDuration()),
			fiber.WithDebug(flags.debugEnabled(cfg)),
		},
		Middleware: []func(http.Handler) http.Handler{
			middleware.Tracing(
				middleware.WithTracerName("fiberctl"),
				middleware.WithRequestFilter(func(r *http.Request) bool {
					return r.URL.Path != "/healthz" && r.URL.Path != "/metrics"
				}),
			),
		},
	}
	if !cfg.Metrics.Disabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := fiber.NewMetrics(fiber.MetricsConfig{
			Namespace: cfg.Metrics.Namespace,
			Registry:  reg,
		})
		opts.Gatherer = reg
		opts.HTTPMetrics = middleware.NewMetrics(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(reg),
		)
		opts.SchedulerOptions = append(opts.SchedulerOptions, fiber.WithMetrics(metrics))
	}

	srv := inspect.New(host.NewMemory(), opts)

	if path != "" {
		sc, err := scene.Load(path)
		if err != nil {
			return err
		}
		view, err := sc.Build(scene.Builtins())
		if err != nil {
			return err
		}
		if err := srv.Render(ctx, view); err != nil {
			return err
		}
		logger.Info("scene rendered", "scene", sc.Name, "pass", srv.Scheduler().Pass())
	}

	p := newPrinter(os.Stdout)
	p.success("Inspector on http://%s", addr)
	return srv.ListenAndServe(ctx, addr)
}
