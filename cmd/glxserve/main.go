// Command glxserve serves a directory for browser development of glx
// programs, typically index.html, main.wasm and wasm_exec.js.
//
// Pages get a script that reloads them whenever a file under the directory
// changes. Prometheus metrics are served at /metrics unless disabled.
//
//	glxserve --dir cmd/quad/web --addr :8080
//
// Settings come from glxserve.yaml and GLX_ environment variables, with
// flags taking precedence.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/glx/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

type options struct {
	Addr     string        `fig:"addr"`
	Dir      string        `fig:"dir"`
	Metrics  bool          `fig:"metrics"`
	Reload   bool          `fig:"reload"`
	Debounce time.Duration `fig:"debounce"`
	Debug    bool          `fig:"debug"`
}

func defaultOptions() options {
	return options{
		Addr:     ":8080",
		Dir:      ".",
		Metrics:  true,
		Reload:   true,
		Debounce: 100 * time.Millisecond,
	}
}

// loadOptions applies glxserve.yaml and the environment over the defaults,
// and then any flags set in args.
func loadOptions(args []string) (options, error) {
	opts := defaultOptions()

	var flags options
	fs := pflag.NewFlagSet("glxserve", pflag.ContinueOnError)
	path := fs.StringP("config", "c", "", "configuration file")
	fs.StringVar(&flags.Addr, "addr", opts.Addr, "listen address")
	fs.StringVar(&flags.Dir, "dir", opts.Dir, "directory to serve")
	fs.BoolVar(&flags.Metrics, "metrics", opts.Metrics, "serve prometheus metrics at /metrics")
	fs.BoolVar(&flags.Reload, "reload", opts.Reload, "reload pages when files change")
	fs.DurationVar(&flags.Debounce, "debounce", opts.Debounce, "quiet period before a reload")
	fs.BoolVar(&flags.Debug, "debug", opts.Debug, "log at debug level")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if err := config.Load(&opts, "glxserve.yaml", *path); err != nil {
		return opts, err
	}
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "addr":
			opts.Addr = flags.Addr
		case "dir":
			opts.Dir = flags.Dir
		case "metrics":
			opts.Metrics = flags.Metrics
		case "reload":
			opts.Reload = flags.Reload
		case "debounce":
			opts.Debounce = flags.Debounce
		case "debug":
			opts.Debug = flags.Debug
		}
	})
	return opts, nil
}

func main() {
	opts, err := loadOptions(os.Args[1:])
	if err != nil {
		slog.Error("glxserve: config", "err", err)
		os.Exit(2)
	}
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, opts, log); err != nil {
		log.Error("glxserve: failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, log *slog.Logger) error {
	if fi, err := os.Stat(opts.Dir); err != nil {
		return err
	} else if !fi.IsDir() {
		return errors.New(opts.Dir + " is not a directory")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())
	m := newMetrics(reg)
	h := newHub(log, m)

	var gatherer prometheus.Gatherer
	if opts.Metrics {
		gatherer = reg
	}
	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           newHandler(opts.Dir, h, m, gatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if opts.Reload {
		go func() {
			if err := watch(ctx, opts.Dir, opts.Debounce, h); err != nil {
				log.Warn("glxserve: live reload disabled", "err", err)
			}
		}()
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("glxserve: serving", "dir", opts.Dir, "addr", opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("glxserve: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	h.closeAll()
	return srv.Shutdown(shutdownCtx)
}
