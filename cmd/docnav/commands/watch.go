package commands

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/pipeline"
	"git.home.luguber.info/inful/docnav/internal/watch"
	prom "github.com/prometheus/client_golang/prometheus"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	MetricsAddr string `name:"metrics-addr" help:"Serve Prometheus metrics on this address (overrides metrics.listen)"`
}

// Run executes the watch command.
func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.run(ctx, g, root)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.LoadedConfig()
	if err != nil {
		return err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	addr := w.MetricsAddr
	if addr == "" {
		addr = cfg.Metrics.Listen
	}
	if addr != "" {
		reg := metrics.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		stop, err := serveMetrics(addr, cfg.Metrics.Path, reg)
		if err != nil {
			return err
		}
		defer stop()
	}

	runner := pipeline.NewRunner(recorder)
	plan := pipeline.PlanFromConfig(cfg)
	policy := cfg.RetryPolicy()
	rebuild := func(ctx context.Context, changed []string) {
		if len(changed) > 0 {
			slog.Info("Sidebar specification changed, rebuilding", logfields.File(plan.SpecFile))
		}
		var res *pipeline.Result
		err := policy.Do(ctx, func(attempt int) error {
			if attempt > 0 {
				slog.Debug("Retrying sidebar rebuild", logfields.File(plan.SpecFile), slog.Int("attempt", attempt))
			}
			var err error
			res, err = runner.Build(ctx, plan)
			return err
		}, func(err error) bool {
			// Only load failures are transient; violations need an edit.
			return res == nil && errors.IsCategory(err, errors.CategorySpec)
		})
		switch {
		case err != nil && res != nil && !res.Report.OK():
			_, _ = fmt.Fprintf(g.Stderr, "%s: %d violation(s), exports left unchanged\n%v\n",
				plan.SpecFile, len(res.Report.Violations), res.Report.Violations.Err())
		case err != nil:
			_, _ = fmt.Fprintf(g.Stderr, "%s: %v\n", plan.SpecFile, err)
		default:
			_, _ = fmt.Fprintf(g.Stdout, "Rebuilt %s (%d export(s))\n", plan.SpecFile, len(res.Exported))
		}
	}

	// A broken initial specification is reported but does not stop watching.
	rebuild(ctx, nil)

	watcher, err := watch.New([]string{plan.SpecFile}, cfg.DebounceDuration(), rebuild)
	if err != nil {
		return errors.FileSystemError("watch sidebar specification", err)
	}
	slog.Info("Watching sidebar specification", logfields.File(plan.SpecFile))
	if err := watcher.Run(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryRuntime, errors.SeverityFatal, "file watcher failed")
	}
	slog.Info("Watcher stopped")
	return nil
}

// serveMetrics starts the metrics endpoint and returns a function that
// shuts it down.
func serveMetrics(addr, path string, reg *prom.Registry) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryRuntime, errors.SeverityFatal, "failed to bind metrics listener").
			WithContext("addr", addr)
	}

	mux := http.NewServeMux()
	mux.Handle(path, metrics.HTTPHandler(reg))
	srv := &http.Server{Handler: mux, ReadTimeout: 30 * time.Second, WriteTimeout: 30 * time.Second, IdleTimeout: 120 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server error", logfields.Addr(addr), logfields.Error(err))
		}
	}()
	slog.Info("Serving metrics", logfields.Addr(ln.Addr().String()), logfields.Path(path))

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Metrics server shutdown", logfields.Error(err))
		}
	}, nil
}
