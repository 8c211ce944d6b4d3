// Command focustrap-demo shows a confirmation dialog whose focus stays
// trapped until it is dismissed.
package main

import (
	"context"
	stdliberrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/odvcencio/focustrap/pkg/config"
	"github.com/odvcencio/focustrap/pkg/logging"
	"github.com/odvcencio/focustrap/pkg/telemetry"
	"github.com/odvcencio/focustrap/pkg/ui/backend/tcell"
	"github.com/odvcencio/focustrap/pkg/ui/dom"
	"github.com/odvcencio/focustrap/pkg/ui/modal"
	"github.com/odvcencio/focustrap/pkg/ui/runtime"
)

var (
	configPath  string
	logFile     string
	metricsAddr string
	traceFile   string
	watchConfig bool
)

func main() {
	flag.StringVar(&configPath, "config", "", "config file (default: ~/.focustrap/config.yaml then ./.focustrap/config.yaml)")
	flag.StringVar(&logFile, "log-file", "", "write JSON logs to this file")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flag.StringVar(&traceFile, "trace", "", "export dispatch spans to this file")
	flag.BoolVar(&watchConfig, "watch", true, "reload dismissal settings when -config changes")
	flag.Parse()

	if !isInteractiveTerminal() {
		fmt.Fprintln(os.Stderr, "focustrap-demo needs an interactive terminal")
		os.Exit(2)
	}
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logOut, err := openOutput(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logOut.Close()
	logger := logging.NewLoggerWithWriter(logOut, "demo", logging.ParseLevel(cfg.Log.Level))

	if cfg.Tracing.Enabled {
		traceOut, err := openOutput(cfg.Tracing.File)
		if err != nil {
			return err
		}
		defer traceOut.Close()
		tp, err := telemetry.NewTracerProvider("focustrap-demo", traceOut)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = tp.Shutdown(ctx)
		}()
	}

	registry := prometheus.NewRegistry()
	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		metrics = telemetry.NewMetrics(registry)
	}

	resolver, err := cfg.Resolver()
	if err != nil {
		return err
	}
	doc := dom.New()
	doc.SetResolver(resolver)

	opts := modal.DefaultOptions()
	opts.RootID = cfg.Modal.RootID
	opts.Trap.Resolver = resolver
	opts.Trap.Logger = logger
	opts.Trap.Metrics = metrics
	opts.Trap.CloseOnEscape = cfg.Modal.CloseOnEscape
	opts.Trap.CloseOnBackdrop = cfg.Modal.CloseOnBackdrop
	opts.Trap.PreventEscapeDefault = cfg.Modal.PreventEscapeDefault

	d, err := newDemo(doc, opts)
	if err != nil {
		return err
	}

	be, err := tcell.New()
	if err != nil {
		return err
	}
	app := runtime.NewApp(runtime.AppConfig{
		Backend:      be,
		Document:     doc,
		Update:       d.update,
		Logger:       logger,
		TickRate:     cfg.UI.TickRate,
		QuitOnEscape: cfg.UI.QuitOnEscape,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// the other workers stop once the UI exits
		defer cancel()
		return app.Run(ctx)
	})
	if cfg.Metrics.Enabled {
		g.Go(func() error {
			logger.Info("serving metrics", "addr", cfg.Metrics.Addr)
			return telemetry.Serve(ctx, cfg.Metrics.Addr, registry)
		})
	}
	if watchConfig && configPath != "" {
		g.Go(func() error {
			return config.Watch(ctx, configPath, func(next *config.Config, err error) {
				if err != nil {
					logger.Warn("config reload failed", "error", err)
					return
				}
				if err := app.Call(ctx, func(*runtime.App) { d.applyConfig(next) }); err != nil {
					return
				}
				logger.Info("config reloaded", "path", configPath)
			})
		})
	}

	if err := g.Wait(); err != nil && !stdliberrors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = metricsAddr
	}
	if traceFile != "" {
		cfg.Tracing.Enabled = true
		cfg.Tracing.File = traceFile
	}
	return cfg, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func isInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
}
