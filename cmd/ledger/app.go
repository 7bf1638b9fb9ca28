package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/minledger/internal/adapter/http"
	"github.com/iho/minledger/internal/adapter/http/handler"
	fileRepo "github.com/iho/minledger/internal/adapter/repository/file"
	memoryRepo "github.com/iho/minledger/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/minledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/minledger/internal/adapter/repository/redis"
	"github.com/iho/minledger/internal/infrastructure/config"
	"github.com/iho/minledger/internal/infrastructure/idgen"
	"github.com/iho/minledger/internal/infrastructure/metrics"
	"github.com/iho/minledger/internal/infrastructure/postgres"
	"github.com/iho/minledger/internal/infrastructure/redis"
	"github.com/iho/minledger/internal/usecase"
)

// app is the composition root: it owns the ledger and every resource behind it.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	ledger   *usecase.LedgerUseCase
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	ping     handler.Pinger
	closers  []func()
}

func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	a := &app{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	a.registry.MustRegister(collectors.NewGoCollector())
	a.metrics = metrics.New(a.registry)

	store, err := a.openStore(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	a.ledger = usecase.NewLedgerUseCase(ctx, usecase.LedgerConfig{
		Store:   store,
		IDGen:   idgen.NewULIDGenerator(),
		Metrics: a.metrics,
		Logger:  logger,
	})

	return a, nil
}

// openStore connects the balance store selected by STORE_DRIVER.
// A backend that cannot be reached is logged and the ledger runs in memory.
func (a *app) openStore(ctx context.Context) (usecase.BalanceStore, error) {
	switch a.cfg.StoreDriver {
	case config.StoreMemory:
		return memoryRepo.NewBalanceStore(), nil

	case config.StoreFile:
		a.logger.Info().Str("path", a.cfg.StoreFile).Msg("using file balance store")
		return fileRepo.NewBalanceStore(a.cfg.StoreFile), nil

	case config.StorePostgres:
		connectCtx, cancel := context.WithTimeout(ctx, a.cfg.DatabaseTimeout)
		defer cancel()

		pool, err := postgres.NewPoolWithConfig(connectCtx, postgres.PoolConfig{
			DatabaseURL: a.cfg.DatabaseURL,
			MaxConns:    a.cfg.DatabaseMaxConns,
			MinConns:    a.cfg.DatabaseMinConns,
		})
		if err != nil {
			return a.unavailable(err), nil
		}
		a.closers = append(a.closers, pool.Close)
		a.ping = pool.Ping
		a.logger.Info().Msg("connected to postgres")
		return postgresRepo.NewBalanceStore(pool, a.logger), nil

	case config.StoreRedis:
		client, err := redis.NewClient(ctx, a.cfg.RedisURL)
		if err != nil {
			return a.unavailable(err), nil
		}
		a.closers = append(a.closers, func() { client.Close() })
		a.ping = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		a.logger.Info().Msg("connected to redis")
		return redisRepo.NewBalanceStore(client, a.cfg.RedisKey), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", a.cfg.StoreDriver)
	}
}

func (a *app) unavailable(err error) usecase.BalanceStore {
	a.metrics.RecordStoreError("connect")
	a.logger.Warn().Err(err).
		Str("driver", a.cfg.StoreDriver).
		Msg("balance store unavailable, keeping balance in memory only")
	a.ping = func(context.Context) error { return err }
	return memoryRepo.NewBalanceStore()
}

// startHTTP serves the read-only API when HTTP_ADDR is set. The returned
// function shuts the server down.
func (a *app) startHTTP() func() {
	if a.cfg.HTTPAddr == "" {
		return func() {}
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		BalanceHandler: handler.NewBalanceHandler(a.ledger),
		HealthHandler:  handler.NewHealthHandler(a.cfg.StoreDriver, a.ping),
		Metrics:        a.metrics,
		Gatherer:       a.registry,
		Logger:         a.logger,
	})

	server := &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.cfg.HTTPReadTimeout,
		WriteTimeout: a.cfg.HTTPWriteTimeout,
	}

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error().Err(err).Msg("http server failed")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			a.logger.Error().Err(err).Msg("http server forced to shutdown")
		}
	}
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
