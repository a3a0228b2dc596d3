package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	grpcAdapter "github.com/Rushibhatt10/HBEstate/internal/adapter/grpc"
	"github.com/Rushibhatt10/HBEstate/internal/adapter/http/handler"
	"github.com/Rushibhatt10/HBEstate/internal/adapter/http/middleware"
	"github.com/Rushibhatt10/HBEstate/internal/adapter/http/router"
	natsAdapter "github.com/Rushibhatt10/HBEstate/internal/adapter/messaging/nats"
	"github.com/Rushibhatt10/HBEstate/internal/adapter/repository/cache"
	mongoRepo "github.com/Rushibhatt10/HBEstate/internal/adapter/repository/mongodb"
	"github.com/Rushibhatt10/HBEstate/internal/adapter/storage/s3"
	"github.com/Rushibhatt10/HBEstate/internal/config"
	"github.com/Rushibhatt10/HBEstate/internal/mailer"
	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/platform/metrics"
	"github.com/Rushibhatt10/HBEstate/internal/platform/tracer"
	"github.com/Rushibhatt10/HBEstate/internal/platform/validator"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
	"github.com/Rushibhatt10/HBEstate/internal/property/usecase"
)

const tokenIssuer = "hbestate-admin"

func main() {
	// 1. Logger
	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	// 2. Configuration
	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Application starting...", zap.String("service_name", cfg.ServiceName))

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Tracing
	tp := tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	// 4. MongoDB
	mongoClient, err := mongoRepo.Connect(rootCtx, cfg.MongoURI)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	appLogger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	db := mongoClient.Database(cfg.MongoDatabase)
	propertyRepo := mongoRepo.NewPropertyRepository(db, appLogger)
	queryRepo := mongoRepo.NewQueryRepository(db, appLogger)
	viewRepo := mongoRepo.NewViewRepository(db, appLogger)

	// 5. Redis listing cache. The service runs uncached when Redis is down.
	var propertyCache domain.PropertyCache = cache.NopCache{}
	healthChecks := map[string]handler.HealthChecker{
		"mongo": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
	}
	redisClient, err := cache.NewRedisClient(rootCtx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB, appLogger)
	if err != nil {
		appLogger.Warn("Redis unavailable, property listings will not be cached", zap.Error(err))
	} else {
		defer func() { _ = redisClient.Close() }()
		propertyCache = cache.NewPropertyCache(redisClient, cfg.PropertyCacheTTL, appLogger)
		healthChecks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	// 6. Image storage
	storage, err := s3.NewS3Storage(rootCtx, s3.Options{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
		PublicURL: cfg.MinioPublicURL,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	// 7. NATS events
	var publisher domain.EventPublisher = natsAdapter.NopPublisher{}
	natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
	if err != nil {
		appLogger.Warn("NATS unavailable, domain events will be dropped", zap.Error(err))
	} else {
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	// 8. Operator mail
	var notifier domain.QueryNotifier
	if cfg.SMTPEnabled() {
		m, err := mailer.NewMailer(mailer.SMTPConfig{
			Host:        cfg.SMTPHost,
			Port:        cfg.SMTPPort,
			Username:    cfg.SMTPUsername,
			Password:    cfg.SMTPPassword,
			SenderEmail: cfg.SMTPSenderEmail,
			NotifyEmail: cfg.NotifyEmail,
		}, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize mailer", zap.Error(err))
		}
		notifier = m
	} else {
		appLogger.Info("SMTP not configured, contact queries will not be mailed")
	}

	// 9. Metrics
	metricsManager := metrics.NewManager(cfg.ServiceName)
	metricsServer := metrics.NewMetricsServer(cfg.PrometheusMetricsPort, metricsManager.Registry)
	go func() {
		if err := metrics.StartMetricsServer(metricsServer, appLogger); err != nil {
			appLogger.Error("Prometheus metrics server failed", zap.Error(err))
		}
	}()

	// 10. Usecases
	v := validator.New()
	photoUC := usecase.NewPhotoUsecase(storage, metricsManager, cfg.MaxUploadBytes, cfg.MaxImagesPerProperty, appLogger)
	propertyUC := usecase.NewPropertyUsecase(propertyRepo, propertyCache, photoUC, publisher, v, metricsManager, cfg.MaxImagesPerProperty, appLogger)
	queryUC := usecase.NewQueryUsecase(queryRepo, photoUC, notifier, publisher, v, metricsManager, cfg.PhoneRegion, appLogger)
	activityUC := usecase.NewActivityUsecase(viewRepo, metricsManager, cfg.ActivityLimit, appLogger)
	dashboardUC := usecase.NewDashboardUsecase(propertyRepo, queryRepo, viewRepo)
	authUC, err := usecase.NewAuthUsecase(cfg.AdminPasswordHash, cfg.AdminPassword, cfg.JWTSecret, tokenIssuer, cfg.AdminTokenTTL, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize admin auth", zap.Error(err))
	}

	// 11. HTTP and gRPC servers
	limits := handler.UploadLimits{MaxFileBytes: cfg.MaxUploadBytes, MaxFiles: cfg.MaxImagesPerProperty}
	api := router.New(router.Deps{
		Properties:     handler.NewPropertyHandler(propertyUC, photoUC, activityUC, limits, appLogger),
		Queries:        handler.NewQueryHandler(queryUC, limits, appLogger),
		Admin:          handler.NewAdminHandler(authUC, activityUC, dashboardUC, appLogger),
		Health:         handler.Healthz(healthChecks),
		Verifier:       authUC,
		ContactLimiter: middleware.NewIPRateLimiter(cfg.ContactRatePerMin, appLogger),
		LoginLimiter:   middleware.NewIPRateLimiter(cfg.LoginRatePerMin, appLogger),
		Metrics:        metricsManager,
		Logger:         appLogger,
		ServiceName:    cfg.ServiceName,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
	go func() {
		appLogger.Info("HTTP server starting", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	grpcSrv := grpcAdapter.NewGRPCServer(cfg.ServiceName, appLogger)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		appLogger.Fatal("Failed to listen for gRPC", zap.String("port", cfg.GRPCPort), zap.Error(err))
	}
	go func() {
		appLogger.Info("gRPC health server starting", zap.String("addr", lis.Addr().String()))
		if err := grpcSrv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			appLogger.Fatal("gRPC server failed", zap.Error(err))
		}
	}()

	dependencyChecks := make(map[string]grpcAdapter.DependencyCheck, len(healthChecks))
	for name, check := range healthChecks {
		dependencyChecks[name] = grpcAdapter.DependencyCheck(check)
	}
	go grpcSrv.WatchDependencies(rootCtx, 15*time.Second, dependencyChecks)

	// 12. Graceful shutdown
	<-rootCtx.Done()
	appLogger.Info("Shutdown signal received, draining...")

	grpcSrv.SetServing(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Metrics server shutdown failed", zap.Error(err))
		}
	}
	grpcSrv.Shutdown()

	// Pending operator mails hold a copy of the query; let them finish.
	queryUC.Wait()

	appLogger.Info("Server exited")
}
