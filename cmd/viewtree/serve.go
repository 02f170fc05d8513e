package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/viewtree/internal/demo"
	"github.com/vango-dev/viewtree/pkg/devtools"
	"github.com/vango-dev/viewtree/pkg/dom"
	"github.com/vango-dev/viewtree/pkg/journal"
	"github.com/vango-dev/viewtree/pkg/metrics"
	"github.com/vango-dev/viewtree/pkg/view"
)

func serveCmd(c *cli) *cobra.Command {
	var (
		port   int
		host   string
		record bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live todo tree with devtools",
		Long: `Start the devtools server around a small todo application.

Actions such as shuffle and toggle reconcile the keyed list; every
lifecycle event is streamed to connected browsers, counted in
Prometheus metrics and optionally recorded into the journal.

Endpoints:
  GET  /                  the rendered document
  GET  /api/tree          node tree with mount state and hook interest
  POST /api/{action}      add, remove, toggle, shuffle, reverse, clear
  GET  /metrics           Prometheus metrics

Examples:
  viewtree serve
  viewtree serve --port=8080 --journal`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				c.cfg.Devtools.Port = port
			}
			if host != "" {
				c.cfg.Devtools.Host = host
			}
			if err := c.cfg.Validate(); err != nil {
				return err
			}
			return runServe(c, record)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVarP(&record, "journal", "j", false, "Record events into the journal")

	return cmd
}

func runServe(c *cli, record bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var observers []view.Option
	reg := prometheus.NewRegistry()
	if c.cfg.Metrics.Enabled {
		reg.MustRegister(collectors.NewGoCollector())
		observers = append(observers, view.WithObserver(metrics.New(
			metrics.WithRegistry(reg),
			metrics.WithNamespace(c.cfg.Metrics.Namespace),
		)))
	}
	if record {
		j, err := journal.Open(c.cfg.JournalPath(), journal.WithLogger(c.logger))
		if err != nil {
			return err
		}
		defer j.Close()
		s, err := j.Begin("serve " + time.Now().Format(time.RFC3339))
		if err != nil {
			return err
		}
		c.info("Recording session %d into %s", s.ID, j.Path())
		observers = append(observers, view.WithObserver(j))
	}

	env := demo.NewEnv(nil, c.engineOptions(observers...)...)
	app := demo.NewTodoApp(env, uint64(time.Now().UnixNano()), "read the docs", "mount a view", "reorder a list")
	if err := app.Mount(ctx); err != nil {
		return err
	}

	opts := devtools.ServerOptions{
		Logger: c.logger,
		Pretty: c.cfg.Devtools.Pretty,
	}
	if c.cfg.Metrics.Enabled {
		opts.Gatherer = reg
	} else {
		c.warn("Metrics disabled; /metrics is not served")
	}
	server := devtools.NewServer(devtools.NewTree(env.Doc, env.Engine), opts)
	env.Engine.Observe(server.Hub())
	registerTodoActions(server, app)

	c.printBanner()
	c.success("Devtools at %s", c.cfg.DevtoolsURL())
	c.info("Actions: %v", server.Actions())

	if err := server.ListenAndServe(ctx, c.cfg.DevtoolsAddress()); err != nil {
		return err
	}
	c.info("Shut down")
	return nil
}

func registerTodoActions(s *devtools.Server, app *demo.TodoApp) {
	wrap := func(fn func(context.Context) error) devtools.Action {
		return func(ctx context.Context, _ *dom.Document, _ *view.Engine) error {
			return fn(ctx)
		}
	}
	s.Handle("add", func(ctx context.Context, _ *dom.Document, _ *view.Engine) error {
		return app.Add(ctx, "")
	})
	s.Handle("remove", wrap(app.RemoveFirst))
	s.Handle("toggle", wrap(app.ToggleFirst))
	s.Handle("shuffle", wrap(app.Shuffle))
	s.Handle("reverse", wrap(app.Reverse))
	s.Handle("clear", wrap(app.ClearDone))
}
