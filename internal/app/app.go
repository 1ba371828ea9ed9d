// Package app wires configuration, catalog, ledger and transports together.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"github.com/xtding233/gem-gacha/internal/api"
	"github.com/xtding233/gem-gacha/internal/config"
	"github.com/xtding233/gem-gacha/internal/gacha"
	"github.com/xtding233/gem-gacha/internal/game"
	"github.com/xtding233/gem-gacha/internal/httpapi"
	"github.com/xtding233/gem-gacha/internal/jobs"
	"github.com/xtding233/gem-gacha/internal/ledger"
	"github.com/xtding233/gem-gacha/internal/rpc"
)

const shutdownTimeout = 10 * time.Second

// App holds every long-lived component of the server.
type App struct {
	Config    *config.Config
	Catalog   *game.Live
	Ledger    *ledger.Service
	Handler   *api.Handler
	Scheduler *jobs.Scheduler

	watcher *game.FileWatcher
	http    *http.Server
	grpc    *grpc.Server
	health  *health.Server
}

// New loads the catalog and builds all components without starting them.
func New(cfg *config.Config) (*App, error) {
	loader := game.NewLoader(cfg.CatalogPath)
	live, err := game.NewLive(loader)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	log.WithFields(log.Fields{
		"version":  live.Catalog().Version,
		"override": loader.OverridePath(),
	}).Info("catalog loaded")

	rng := gacha.DefaultRNG()
	if cfg.RNGSeed != 0 {
		rng = gacha.NewSeededRNG(cfg.RNGSeed)
		log.WithField("seed", cfg.RNGSeed).Warn("using seeded RNG")
	}

	svc := ledger.NewService(ledger.NewMemoryStore(), live,
		ledger.WithRNG(rng),
		ledger.WithMaxDrawCount(cfg.MaxDrawCount),
	)
	h := api.NewHandler(svc, live)

	a := &App{
		Config:    cfg,
		Catalog:   live,
		Ledger:    svc,
		Handler:   h,
		Scheduler: jobs.NewScheduler(svc),
		http: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpapi.NewHandler(h, cfg.CORSOrigin),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	if cfg.GRPCAddr != "" {
		a.grpc, a.health = rpc.NewGRPCServer(h)
	}
	if cfg.CatalogPath != "" && cfg.CatalogReloadInterval > 0 {
		a.watcher = game.NewFileWatcher([]string{loader.OverridePath()}, cfg.CatalogReloadInterval, func(string) {
			_ = live.Reload()
		})
	}
	return a, nil
}

// Run serves until ctx is cancelled or a listener fails, then shuts down.
func (a *App) Run(ctx context.Context) error {
	httpLis, err := net.Listen("tcp", a.Config.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen http: %w", err)
	}
	var grpcLis net.Listener
	if a.grpc != nil {
		grpcLis, err = net.Listen("tcp", a.Config.GRPCAddr)
		if err != nil {
			httpLis.Close()
			return fmt.Errorf("listen grpc: %w", err)
		}
	}

	if err := a.Scheduler.Start(a.Config.StatsSchedule); err != nil {
		httpLis.Close()
		if grpcLis != nil {
			grpcLis.Close()
		}
		return err
	}
	defer a.Scheduler.Stop()

	if a.watcher != nil {
		a.watcher.Start()
		defer a.watcher.Stop()
	}

	errCh := make(chan error, 2)
	go func() {
		log.WithField("addr", httpLis.Addr().String()).Info("http server listening")
		if err := a.http.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http: %w", err)
		}
	}()
	if a.grpc != nil {
		go func() {
			log.WithField("addr", grpcLis.Addr().String()).Info("grpc server listening")
			if err := a.grpc.Serve(grpcLis); err != nil {
				errCh <- fmt.Errorf("grpc: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case runErr = <-errCh:
		log.WithError(runErr).Error("server failed, shutting down")
	}

	if a.health != nil {
		a.health.Shutdown()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.http.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}
	if a.grpc != nil {
		a.grpc.GracefulStop()
	}
	a.Scheduler.ReportStats()
	return runErr
}
