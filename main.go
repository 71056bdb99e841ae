package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petcare/config"
	"petcare/database"
	"petcare/handlers"
	"petcare/metrics"
	"petcare/middleware"
	"petcare/routes"
	"petcare/services/access"
	"petcare/services/booking"
	"petcare/services/notification"
	"petcare/utils"

	accountRepo "petcare/database/repository/account"
	bookingRepo "petcare/database/repository/booking"
	profileRepo "petcare/database/repository/profile"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	if config.AppConfig.JWTSecret == "" {
		logger.Warn("main: JWT_SECRET is empty, every protected request will be rejected")
	}

	database.InitDB()
	db := database.Database()
	utils.InitEventsClient()

	// repositories.
	accounts := accountRepo.NewMongoAccountRepo(db)
	profiles := profileRepo.NewMongoProfileRepo(db)
	if err := profiles.EnsureIndexes(rootCtx); err != nil {
		logger.Warn("main: failed to ensure profile indexes", zap.Error(err))
	}
	bookings := newBookingStore(rootCtx, logger)

	// metrics.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(config.AppConfig.MetricsNamespace, registry)

	// services.
	pipeline := access.NewPipeline(
		access.NewJWTVerifier(config.AppConfig.JWTSecret),
		accounts,
		access.DefaultProfileQueries(profiles),
		access.WithLogger(logger.Named("access")),
		access.WithMetrics(appMetrics),
	)
	notifier := notification.MultiNotifier{
		notification.NewRedisNotifier(utils.GetEventsClient(), config.AppConfig.EventsChannel),
		notification.NewLogNotifier(logger.Named("events")),
	}
	lifecycle := booking.NewLifecycle(bookings, notifier,
		booking.WithLogger(logger.Named("booking")),
		booking.WithMetrics(appMetrics),
		booking.WithGraceWindow(config.AppConfig.GraceWindow()),
	)

	utils.StartHealthMonitor(rootCtx, 30*time.Second, map[string]utils.HealthCheck{
		"mongo": func(ctx context.Context) error { return database.MongoClient.Ping(ctx, nil) },
		"redis": func(ctx context.Context) error { return utils.GetEventsClient().Ping(ctx).Err() },
	})

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if err := router.SetTrustedProxies(config.AppConfig.TrustedProxyList()); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger.Named("http")))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	handlerBundle := handlers.NewHandlerBundle(handlers.NewBookingHandler(lifecycle), metricsHandler)
	routes.RegisterRoutes(router, handlerBundle, pipeline)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}
	_ = utils.GetEventsClient().Close()

	logger.Sugar().Info("main: server stopped gracefully")
}

// newBookingStore picks the booking persistence backend from BOOKING_STORE.
func newBookingStore(ctx context.Context, logger *zap.Logger) bookingRepo.BookingRepository {
	switch config.AppConfig.BookingStore {
	case "postgres":
		if err := database.InitPostgres(); err != nil {
			logger.Fatal("main: postgres booking store unavailable", zap.Error(err))
		}
		repo := bookingRepo.NewGormBookingRepo(database.PostgresDB)
		if err := repo.Migrate(); err != nil {
			logger.Fatal("main: failed to migrate bookings table", zap.Error(err))
		}
		return repo
	case "memory":
		logger.Warn("main: bookings are kept in memory and lost on restart")
		return bookingRepo.NewMemoryBookingRepo()
	default:
		repo := bookingRepo.NewMongoBookingRepo(database.Database())
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Warn("main: failed to ensure booking indexes", zap.Error(err))
		}
		return repo
	}
}
