package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intake_backend/internal/address"
	"intake_backend/internal/geocode"
	apphttp "intake_backend/internal/http"
	"intake_backend/internal/http/router"
	"intake_backend/platform/config"
	"intake_backend/platform/logger"
	"intake_backend/platform/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// redisHealth adapts the cache client to apphttp.HealthChecker.
type redisHealth struct {
	rdb *redis.Client
}

func (h redisHealth) Ping(ctx context.Context) error {
	return h.rdb.Ping(ctx).Err()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	var geocoder geocode.Geocoder = geocode.NewClient(cfg, log, appMetrics)

	var health apphttp.HealthChecker
	if cfg.IsCacheEnabled() {
		rdb, err := geocode.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Warn("geocode cache unavailable, continuing without it", "error", err)
		} else {
			defer func() {
				_ = rdb.Close()
			}()
			geocoder = geocode.NewCache(geocoder, rdb, cfg.GetCacheTTL(), log, appMetrics)
			health = redisHealth{rdb: rdb}
			log.Info("geocode cache enabled", "ttl", cfg.GetCacheTTL().String())
		}
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	addressService := address.NewService(geocoder, cfg, log, appMetrics)
	addressModule := address.NewModule(addressService)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   health,
		Gatherer: registry,
		Modules: []apphttp.Module{
			addressModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.GetGeocodeTimeout() + 10*time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
