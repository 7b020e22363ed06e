package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/srgjo27/gercamp/internal/adapter/handler"
	"github.com/srgjo27/gercamp/internal/adapter/rediscache"
	"github.com/srgjo27/gercamp/internal/adapter/repository/memory"
	"github.com/srgjo27/gercamp/internal/adapter/repository/postgres"
	"github.com/srgjo27/gercamp/internal/config"
	"github.com/srgjo27/gercamp/internal/core/ports"
	"github.com/srgjo27/gercamp/internal/core/services"
	"github.com/srgjo27/gercamp/internal/platform/auth"
	"github.com/srgjo27/gercamp/internal/platform/cache"
	"github.com/srgjo27/gercamp/internal/platform/database"
	"github.com/srgjo27/gercamp/internal/platform/logger"
	"github.com/srgjo27/gercamp/internal/platform/metrics"
)

type repositories struct {
	yurts          ports.YurtRepository
	bookings       ports.BookingRepository
	travels        ports.TravelRepository
	travelBookings ports.TravelBookingRepository
	products       ports.ProductRepository
	orders         ports.OrderRepository
}

func openRepositories(ctx context.Context, cfg config.DatabaseConfig, zl *zap.Logger) (repositories, *sql.DB, error) {
	if cfg.Driver == "memory" {
		zl.Warn("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			yurts:          store.Yurts(),
			bookings:       store.Bookings(),
			travels:        store.Travels(),
			travelBookings: store.TravelBookings(),
			products:       store.Products(),
			orders:         store.Orders(),
		}, nil, nil
	}

	db, err := database.NewPostgresDB(ctx, cfg.Postgres, zl)
	if err != nil {
		return repositories{}, nil, err
	}

	if cfg.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return repositories{}, nil, err
		}
		zl.Info("database schema applied")
	}

	return repositories{
		yurts:          postgres.NewYurtRepository(db),
		bookings:       postgres.NewBookingRepository(db),
		travels:        postgres.NewTravelRepository(db),
		travelBookings: postgres.NewTravelBookingRepository(db),
		products:       postgres.NewProductRepository(db),
		orders:         postgres.NewOrderRepository(db),
	}, db, nil
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	zl.Info("starting", zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, db, err := openRepositories(ctx, cfg.Database, zl)
	if err != nil {
		zl.Fatal("failed to open storage", zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}

	opts := []services.Option{
		services.WithLogger(zl),
		services.WithPageLimits(services.PageLimits{
			Default: cfg.Pagination.DefaultPageSize,
			Max:     cfg.Pagination.MaxPageSize,
		}),
	}

	if cfg.Redis.Enabled {
		redisClient := cache.NewRedisClient(cfg.Redis)
		defer redisClient.Close()

		if err := cache.Ping(ctx, redisClient, 5, zl); err != nil {
			zl.Fatal("failed to connect to redis", zap.Error(err))
		}
		zl.Info("redis connected", zap.String("addr", cfg.Redis.Address))

		opts = append(opts,
			services.WithScheduleCache(rediscache.NewScheduleCache(redisClient, cfg.Redis.ScheduleTTL)),
			services.WithAuditor(services.NewAuditor(
				rediscache.NewAuditStream(redisClient, cfg.Redis.AuditStream, cfg.Redis.AuditMaxLen), zl,
			)),
		)
	}

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
	}

	bookingService := services.NewBookingService(repos.yurts, repos.bookings, opts...)
	orderService := services.NewOrderService(repos.products, repos.orders, opts...)
	travelService := services.NewTravelService(repos.travels, repos.travelBookings, opts...)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Bookings:       handler.NewBookingHandler(bookingService, zl),
		Orders:         handler.NewOrderHandler(orderService, zl),
		Travels:        handler.NewTravelHandler(travelService, zl),
		Verifier:       auth.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
		Logger:         zl,
		MetricsEnabled: cfg.Monitoring.PrometheusEnabled,
	})

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	if cfg.Workers.CompletionInterval > 0 {
		go bookingService.RunCompletionWorker(workerCtx, cfg.Workers.CompletionInterval)
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server startup failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down server")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exiting")
}
