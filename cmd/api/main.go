package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Nicasiomarques/booking-host-sub000/internal/app"
	"github.com/Nicasiomarques/booking-host-sub000/internal/clock"
	"github.com/Nicasiomarques/booking-host-sub000/internal/config"
	"github.com/Nicasiomarques/booking-host-sub000/internal/events"
	"github.com/Nicasiomarques/booking-host-sub000/internal/logger"
	"github.com/Nicasiomarques/booking-host-sub000/internal/storage/postgres"
	transporthttp "github.com/Nicasiomarques/booking-host-sub000/internal/transport/http"
	"github.com/Nicasiomarques/booking-host-sub000/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	startupCtx, cancel := context.WithTimeout(context.Background(), cfg.StartupTimeout)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		zlog.Fatal("db ping", zap.Error(err))
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		zlog.Fatal("apply migrations", zap.Error(err))
	}

	var publisher events.Publisher = events.NewNop()
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		kafkaPublisher, err := events.NewKafkaPublisher(brokers, cfg.KafkaTopic)
		if err != nil {
			zlog.Fatal("init kafka publisher", zap.Error(err))
		}
		publisher = kafkaPublisher
		zlog.Info("event publishing enabled",
			zap.Strings("brokers", brokers),
			zap.String("topic", cfg.KafkaTopic),
		)
	} else {
		zlog.Info("event publishing disabled, no brokers configured")
	}
	defer func() { _ = publisher.Close() }()

	clk := clock.NewSystem()
	allocationSvc := app.NewAllocationService(postgres.NewAllocationRepository(pool), clk, zlog, publisher)
	lifecycleSvc := app.NewLifecycleService(postgres.NewLifecycleRepository(pool), clk, zlog, publisher)
	availabilitySvc := app.NewAvailabilityService(postgres.NewAvailabilityRepository(pool))

	handler := transporthttp.NewRouter(allocationSvc, lifecycleSvc, availabilitySvc, zlog, cfg.CORSOriginList())

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}

	zlog.Info("api listening", zap.String("addr", cfg.HTTPAddr))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		zlog.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Error("server shutdown error", zap.Error(err))
	}
	zlog.Info("server stopped")
}
