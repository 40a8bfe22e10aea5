package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdv/internal/config"
	"pdv/internal/infra"
	"pdv/internal/repository"
	"pdv/internal/router"
	"pdv/internal/service"
	"pdv/internal/store"
	"pdv/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	repo, backends, err := repository.OpenStateBlobRepository(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open storage")
	}
	defer backends.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Receipt and stock-alert jobs run on the Redis worker pool. Handlers are
	// wired here (composition root) so the pool sees all infrastructure.
	opts := service.ControllerOptions{
		PaymentMethods:       cfg.PaymentMethods(),
		ConsumeUnbilledStock: cfg.ConsumeUnbilledStock,
	}
	rdb := backends.Redis
	var jobsCB *infra.CircuitBreaker
	if cfg.ReceiptsEnabled {
		if rdb == nil {
			rdb, err = infra.NewRedis(cfg.RedisURL)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to connect to redis for the worker pool")
			}
			defer rdb.Close()
		}
		startWorkers(ctx, cfg, rdb)
		jobsCB = infra.NewCircuitBreaker(infra.DefaultCBConfig())
		opts.Notifier = worker.NewDispatcher(rdb, jobsCB)
	}

	st := store.New(repo, cfg.StorageKey, cfg.DefaultWarehouseName)
	ctrl := service.NewController(ctx, st, opts)

	r := router.New(cfg, ctrl, backends.DB, rdb, jobsCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("storage", cfg.StorageDriver).Msgf("pdv listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if err := ctrl.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("final save failed")
	}
	cancel()
	log.Info().Msg("server exited")
}

// setupLogger: dev gets the console writer, production plain JSON.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func startWorkers(ctx context.Context, cfg *config.Config, rdb *redis.Client) {
	pool := worker.NewPool(rdb, map[string]worker.Handler{
		worker.JobReceipt:    worker.NewReceiptWorker(cfg.StoreName, cfg.ReceiptStoragePath),
		worker.JobStockAlert: worker.NewStockAlertWorker(rdb),
	})
	pool.Start(ctx, cfg.WorkerPoolSize)
}
