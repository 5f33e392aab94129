package command

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/nullmap-go/internal/cli/output"
	"github.com/yndnr/nullmap-go/internal/harness/config"
	"github.com/yndnr/nullmap-go/internal/harness/workload"
	"github.com/yndnr/nullmap-go/internal/infra/confloader"
	"github.com/yndnr/nullmap-go/internal/infra/shutdown"
	"github.com/yndnr/nullmap-go/internal/server/httpserver"
	"github.com/yndnr/nullmap-go/internal/telemetry/logger"
	"github.com/yndnr/nullmap-go/internal/telemetry/metric"
	"github.com/yndnr/nullmap-go/pkg/nullmap"
)

const shutdownTimeout = 5 * time.Second

// SoakCommand returns the soak command.
func SoakCommand() *cli.Command {
	return &cli.Command{
		Name:  "soak",
		Usage: "Run a rate-limited mix of map operations and serve Prometheus metrics",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "duration",
				Aliases: []string{"d"},
				Usage:   "Run time; 0 runs until interrupted",
			},
			&cli.Float64Flag{
				Name:  "rate",
				Usage: "Operations per second across all workers; 0 is unlimited",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent workers",
			},
			&cli.IntFlag{
				Name:  "keys",
				Usage: "Size of the key space",
			},
			&cli.Float64Flag{
				Name:  "null-ratio",
				Usage: "Share of writes that store nil",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Listen address of the status and metrics endpoint (e.g. :9090)",
			},
		},
		Action: runSoak,
	}
}

// soakResult is the rendered outcome of a soak run.
type soakResult struct {
	RunID               string `json:"run_id" yaml:"run_id"`
	workload.SoakReport `yaml:",inline"`
}

func soakConfig(c *cli.Context) (*config.Config, error) {
	cfg := GetConfig(c)
	if c.IsSet("duration") {
		cfg.Workload.Duration = c.Duration("duration")
	}
	if c.IsSet("rate") {
		cfg.Workload.Rate = c.Float64("rate")
	}
	if c.IsSet("workers") {
		cfg.Workload.Workers = c.Int("workers")
	}
	if c.IsSet("keys") {
		cfg.Workload.Keys = c.Int("keys")
	}
	if c.IsSet("null-ratio") {
		cfg.Workload.NullRatio = c.Float64("null-ratio")
	}
	if c.IsSet("metrics-addr") {
		cfg.Metrics.Addr = c.String("metrics-addr")
	}
	return cfg, config.Verify(cfg)
}

func runSoak(c *cli.Context) error {
	cfg, err := soakConfig(c)
	if err != nil {
		return err
	}

	log := GetLogger(c)
	runID := ulid.Make().String()
	ctx, cancel := context.WithCancel(logger.WithRunID(logger.WithLogger(c.Context, log), runID))
	defer cancel()
	log = logger.L(ctx)

	registry := metric.NewRegistry()
	m := nullmap.NewSharded[string, *workload.Payload](
		mapOptions(cfg, log.Slog(), nullmap.WithObserver(registry))...)
	if err := registry.Register(metric.NewCollector(func() (int, int) {
		return workload.Occupancy(m)
	}, nil)); err != nil {
		return err
	}

	h := shutdown.NewHandler(shutdownTimeout)
	h.OnShutdown(func(context.Context) error {
		cancel()
		return nil
	})

	if cfg.Metrics.Addr != "" {
		started := time.Now()
		stats := func() any {
			entries, nulls := workload.Occupancy(m)
			return liveStats{
				RunID:      runID,
				Entries:    entries,
				NullValues: nulls,
				UptimeSecs: time.Since(started).Seconds(),
			}
		}
		srv, err := serveStatus(cfg.Metrics, registry, stats, log)
		if err != nil {
			return err
		}
		h.OnShutdown(srv.Shutdown)
	}

	if loader := GetLoader(c); loader != nil && loader.FilePath() != "" {
		w, err := watchConfig(ctx, loader, log)
		if err != nil {
			log.Warn("configuration watch disabled", "error", err)
		} else {
			h.OnShutdown(func(context.Context) error { return w.Stop() })
		}
	}

	go h.Wait(ctx)

	var spinner *output.Spinner
	if interactive(c) {
		spinner = output.NewSpinner(c.App.ErrWriter, "soak running")
		spinner.Start()
	}

	report, err := workload.Soak(ctx, workload.SoakConfig{
		Workers:   cfg.Workload.Workers,
		Rate:      cfg.Workload.Rate,
		Duration:  cfg.Workload.Duration,
		Keys:      cfg.Workload.Keys,
		NullRatio: cfg.Workload.NullRatio,
	}, m)

	if spinner != nil {
		if err != nil {
			spinner.Fail("soak failed")
		} else {
			spinner.Success("soak finished")
		}
	}

	cancel()
	if serr := h.Shutdown(); serr != nil {
		log.Warn("shutdown hooks failed", "error", serr)
	}

	if rerr := render(c, soakResult{RunID: runID, SoakReport: report}); rerr != nil {
		return rerr
	}
	return err
}

// liveStats is the document served on /stats while a soak runs.
type liveStats struct {
	RunID      string  `json:"run_id"`
	Entries    int     `json:"entries"`
	NullValues int     `json:"null_values"`
	UptimeSecs float64 `json:"uptime_seconds"`
}

// serveStatus starts the status server with metrics and live occupancy.
func serveStatus(cfg config.MetricsSection, registry *metric.Registry, stats func() any, log logger.Logger) (*httpserver.Server, error) {
	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Metrics:     registry.Handler(),
		MetricsPath: cfg.Path,
		Stats:       stats,
		Logger:      log.Slog(),
		RateLimit:   cfg.RateLimit,
	})

	srv := httpserver.New(cfg.Addr, router, log.Slog())
	if err := srv.Start(); err != nil {
		return nil, err
	}
	log.Info("serving status", "addr", srv.Addr(), "metrics_path", cfg.Path)
	return srv, nil
}

// watchConfig applies log level changes from the configuration file while
// the soak runs.
func watchConfig(ctx context.Context, loader *confloader.Loader, log logger.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log.Slog()))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(loader.FilePath()); err != nil {
		w.Stop()
		return nil, err
	}

	w.OnChange(func(string) {
		cfg, err := config.Reload(loader)
		if err != nil {
			log.Warn("configuration reload failed", "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			logger.SetLevel(cfg.Log.Level)
			log.Info("log level changed", "level", cfg.Log.Level)
		}
	})
	go w.Run(ctx)
	return w, nil
}
