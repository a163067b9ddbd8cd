package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/infra/kafka"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/reminder"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := timezone.Location(cfg.BusinessTimezone)
	clk := clock.NewSystem()

	// ======================================================
	// 🔧 STORAGE + SINKS
	// ======================================================
	sinks := []audit.Sink{audit.NewLogSink(zl)}

	var store routes.Store
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		mem := memory.NewStore()
		if err := memory.SeedDemo(ctx, mem); err != nil {
			return fmt.Errorf("seed memory store: %w", err)
		}
		store = mem
		zl.Warn("using in-memory storage; data is lost on restart")
	default:
		gdb, err := dbpkg.NewDB(cfg)
		if err != nil {
			return err
		}
		store = infraRepo.NewBookingGormRepository(gdb)
		sinks = append(sinks, audit.New(gdb))
	}

	var publisher *kafka.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		sinks = append(sinks, publisher)
		zl.Info("publishing appointment events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	events := audit.NewDispatcher(zl, cfg.EventQueueSize, sinks...)

	var limiter *middleware.RateLimiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()
		limiter = middleware.NewRateLimiter(rdb, cfg.RateLimitPerMin, time.Minute, "barber:rl")
	}

	// ======================================================
	// ⏰ REMINDERS
	// ======================================================
	workerDone := make(chan struct{})
	if cfg.ReminderEnabled {
		w := reminder.NewWorker(store, events, clk, zl.Named("reminder"), reminder.Config{
			Interval: cfg.ReminderInterval,
			Lead:     cfg.ReminderLead,
			Window:   cfg.ReminderWindow,
		})
		go func() {
			defer close(workerDone)
			w.Run(ctx)
		}()
	} else {
		close(workerDone)
	}

	// ======================================================
	// 🌍 HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		Store:       store,
		Events:      events,
		Clock:       clk,
		Log:         zl,
		Location:    loc,
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSAllowedOrigins,
		Limiter:     limiter,
		FailOpen:    cfg.RateLimitFailOpen,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()), zap.String("storage", cfg.StorageDriver), zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	// ======================================================
	// 🛑 SHUTDOWN
	// ======================================================
	stop()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Warn("http shutdown", zap.Error(err))
	}

	<-workerDone

	if err := events.Close(shutdownCtx); err != nil {
		zl.Warn("event dispatcher did not drain", zap.Error(err))
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			zl.Warn("kafka writer close", zap.Error(err))
		}
	}
	return nil
}
