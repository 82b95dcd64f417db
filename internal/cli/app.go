package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmcdole/purse/internal/adapter"
	"github.com/mmcdole/purse/internal/adapter/source"
	"github.com/mmcdole/purse/internal/itemservice"
	"github.com/mmcdole/purse/internal/screen"
	"github.com/mmcdole/purse/internal/store"
)

// sessionTimeout bounds the one-off premium lookup at startup
const sessionTimeout = 10 * time.Second

// app is everything a command needs, wired from config
type app struct {
	cfg        *adapter.Config
	logger     *slog.Logger
	clients    source.Clients
	cache      *store.FriendsStore
	privileged bool
	screens    screen.Screens

	closers []io.Closer
}

// globalOptions are the persistent flags
type globalOptions struct {
	configPath string
	debug      bool
}

func loadConfig(opts *globalOptions) (*adapter.Config, error) {
	cfg, err := adapter.LoadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.debug {
		cfg.Logging.Level = "DEBUG"
	}
	return cfg, nil
}

// newApp wires config, logging, clients, cache, metrics and the screens.
// selectors may be empty when nothing consumes selections.
func newApp(opts *globalOptions, selectors screen.Selectors) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		a.closers = append(a.closers, closer)
	}
	slog.SetDefault(logger)
	a.logger = logger

	a.clients, err = source.NewClients(cfg, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	a.cache, err = store.NewFriendsStore(cfg.CacheDir(), a.clients.URL)
	if err != nil {
		logger.Warn("friends cache unavailable, keeping it in memory", "error", err)
		a.cache, _ = store.NewFriendsStore("", "")
	}
	a.closers = append(a.closers, a.cache)

	var metrics *itemservice.Metrics
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = itemservice.NewMetrics(reg)
		a.closers = append(a.closers, startMetricsServer(cfg.Metrics.Addr, reg, logger))
	}

	ctx, cancel := context.WithTimeout(context.Background(), sessionTimeout)
	a.privileged = screen.ResolvePrivileged(ctx, a.clients.Session, logger)
	cancel()

	a.screens = screen.Compose(screen.Deps{
		Friends:   a.clients.Friends,
		Cards:     a.clients.Cards,
		Transfers: a.clients.Transfers,
		Cache:     a.cache,
		Selectors: selectors,
		Metrics:   metrics,
		Logger:    logger,
	}, a.privileged)

	logger.Info("composed screens", "source", string(cfg.API.Source), "privileged", a.privileged)
	return a, nil
}

// Close releases everything newApp opened, newest first
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && a.logger != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}

type metricsServer struct {
	srv *http.Server
}

func (m metricsServer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return m.srv.Shutdown(ctx)
}

func startMetricsServer(addr string, reg *prometheus.Registry, logger *slog.Logger) io.Closer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err, "addr", addr)
		}
	}()
	logger.Info("serving metrics", "addr", addr)
	return metricsServer{srv: srv}
}
