package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/pthm/hxhooks/internal/config"
	"github.com/pthm/hxhooks/internal/demo"
	"github.com/pthm/hxhooks/internal/logfields"
	"github.com/pthm/hxhooks/internal/metrics"
	"github.com/pthm/hxhooks/lib/component"
)

var version = "dev"

// CLI is the command line of the demo server.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (defaults are used when empty)" type:"path"`
	Verbose bool             `short:"v" help:"Enable debug logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve      ServeCmd      `cmd:"" default:"1" help:"Run the demo server"`
	ShowConfig ShowConfigCmd `cmd:"" name:"config" help:"Print the effective configuration with secrets redacted"`
}

func (c *CLI) load() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Verbose {
		cfg.Logging.Level = config.LogLevelDebug
	}
	return cfg, nil
}

// ServeCmd runs the HTTP server until SIGINT or SIGTERM.
type ServeCmd struct{}

func (s *ServeCmd) Run(cli *CLI) error {
	cfg, err := cli.load()
	if err != nil {
		return err
	}
	logger := cfg.Logging.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	var rec metrics.Recorder = metrics.NoopRecorder{}
	promReg := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rec = metrics.NewPrometheusRecorder(promReg)
	}

	reg, err := component.NewRegistry([]byte(cfg.Security.Key),
		component.WithLogger(logger),
		component.WithObserver(rec),
	)
	if err != nil {
		return err
	}

	app := demo.New(demo.Options{
		Debounce:     cfg.Search.Debounce,
		MaxDistance:  cfg.Search.MaxDistance,
		PollInterval: cfg.Search.PollInterval,
		OwnerTTL:     cfg.Search.OwnerTTL,
		Logger:       logger,
		Recorder:     rec,
	})
	defer app.Close()
	app.Register(reg)

	mux := http.NewServeMux()
	mux.Handle(component.RoutePrefix, reg.Handler())
	mux.Handle("/", app)
	if cfg.Metrics.Enabled {
		mux.Handle(cfg.Metrics.Path, metrics.HTTPHandler(promReg))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go app.Run(ctx, cfg.Search.OwnerTTL/2)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("demo server listening", logfields.Addr(cfg.Server.Addr), slog.String("version", version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("demo server stopped")
	return nil
}

// ShowConfigCmd prints the effective configuration.
type ShowConfigCmd struct{}

func (s *ShowConfigCmd) Run(cli *CLI) error {
	cfg, err := cli.load()
	if err != nil {
		return err
	}
	out, err := cfg.Redacted().YAML()
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("hxhooks-demo"),
		kong.Description("Demo server for the hxhooks state hooks and HTMX component kit."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli))
}
