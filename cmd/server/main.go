package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/config"
	"github.com/iliyamo/room-booking/internal/database"
	"github.com/iliyamo/room-booking/internal/handler"
	"github.com/iliyamo/room-booking/internal/logger"
	"github.com/iliyamo/room-booking/internal/middleware"
	"github.com/iliyamo/room-booking/internal/model"
	"github.com/iliyamo/room-booking/internal/processor"
	"github.com/iliyamo/room-booking/internal/queue"
	"github.com/iliyamo/room-booking/internal/repository"
	"github.com/iliyamo/room-booking/internal/router"
)

// store is what both the processor and the read handlers need.
type store interface {
	processor.RoomBookingService
	handler.RoomReader
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, pinger, closeStore, err := openStore(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("open store", zap.Error(err))
	}
	defer closeStore()

	var events handler.EventPublisher = queue.NopPublisher{}
	if cfg.EventsEnabled {
		events = queue.NewPublisher(cfg.AMQPURL, zl)
		consumer := queue.NewConsumer(cfg.AMQPURL, cfg.LogDir, zl)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				zl.Error("booking consumer stopped", zap.Error(err))
			}
		}()
	}

	proc := processor.NewRoomBookingRequestProcessor(st, zl)
	h := handler.NewRoomBookingHandler(proc, st, events, zl)

	// Redis is optional; both middlewares pass through when rdb is nil.
	rdb := config.NewRedisClient(zl)
	if rdb != nil {
		defer rdb.Close()
	}
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, zl)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb, zl)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(zl))

	router.RegisterRoutes(e, pinger)
	router.RegisterBooking(e, h, cache, limit)

	addr := ":" + cfg.Port
	go func() {
		zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("db_driver", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
	if err := h.Wait(shutdownCtx); err != nil {
		zl.Warn("pending booking events dropped", zap.Error(err))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	format := cfg.LogFormat
	if cfg.Env == "dev" && os.Getenv("LOG_FORMAT") == "" {
		format = "console"
	}
	return logger.New(cfg.LogLevel, format, "room-booking")
}

// openStore returns the configured store, a pinger for /readyz (nil for
// the in-memory store) and a close func.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (store, handler.Pinger, func(), error) {
	if cfg.DBDriver == config.DriverMemory {
		rooms := make([]model.Room, 0, len(database.SeedRooms))
		for i, name := range database.SeedRooms {
			rooms = append(rooms, model.Room{ID: i + 1, Name: name})
		}
		log.Warn("using in-memory store; bookings are lost on restart")
		return repository.NewMemoryStore(rooms...), nil, func() {}, nil
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, nil, nil, err
	}
	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := database.Migrate(migrateCtx, db); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}
	return repository.NewRoomBookingRepo(db), db, func() { _ = db.Close() }, nil
}
