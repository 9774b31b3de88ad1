package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"amedick/config"
	"amedick/cron"
	"amedick/database"
	"amedick/database/repository"
	"amedick/handlers"
	"amedick/middleware"
	"amedick/routes"
	"amedick/services/admin"
	"amedick/services/booking"
	"amedick/services/directory"
	"amedick/services/doctor"
	"amedick/services/intelligence"
	"amedick/services/notification"
	"amedick/services/storage"
	"amedick/services/user"
	"amedick/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// bootstrap loads configuration and opens the MongoDB and Redis connections.
func bootstrap(ctx context.Context) (*zap.Logger, error) {
	config.LoadConfig()
	logger := utils.GetLogger()

	if err := database.InitDB(ctx); err != nil {
		return logger, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	utils.InitRedis()
	return logger, nil
}

func runServer() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := bootstrap(ctx)
	if err != nil {
		logger.Error("main: startup failed", zap.Error(err))
		return err
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// repositories.
	repos, err := repository.NewMongoRepositories(ctx)
	if err != nil {
		logger.Error("main: repositories unavailable", zap.Error(err))
		database.Disconnect(context.Background())
		return err
	}

	// infrastructure.
	queue := asynq.NewClient(cron.RedisOpt())
	defer queue.Close()
	mailer := notification.NewQueueMailer(queue)

	var mailWorker *asynq.Server
	if config.AppConfig.RunMailWorker {
		mailWorker = cron.InitMailWorker(notification.NewSMTPMailerFromConfig())
	}

	var store storage.StorageService
	if cld, err := storage.NewCloudinaryStorageFromConfig(); err != nil {
		logger.Warn("main: uploads disabled", zap.Error(err))
	} else {
		store = cld
	}

	var generator intelligence.Generator
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gemini, err := intelligence.NewGeminiClient(ctx, key, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Warn("main: autocomplete falls back to the fixed suggestion", zap.Error(err))
		} else {
			defer gemini.Close()
			generator = gemini
		}
	}

	revocations := utils.NewRedisRevocationStore(utils.GetAuthCacheClient())
	tokenTTL := config.AppConfig.JWTExpires

	// services.
	userService := &user.DefaultUserService{
		Repo:     repos.Users,
		OTPs:     utils.NewRedisOTPStore(utils.GetOTPCacheClient()),
		Mailer:   mailer,
		Storage:  store,
		OTPTTL:   config.AppConfig.OTPTTL,
		TokenTTL: tokenTTL,
	}
	doctorDirectory := directory.NewRedisCache(utils.GetCacheClient(), 15*time.Minute)
	directory.StartRefresher(ctx, 5*time.Minute, repos.Doctors, doctorDirectory)

	doctorService := &doctor.DefaultDoctorService{
		Repo:      repos.Doctors,
		Storage:   store,
		Mailer:    mailer,
		Directory: doctorDirectory,
		TokenTTL:  tokenTTL,
	}
	bookingService := &booking.DefaultBookingService{
		Doctors:      repos.Doctors,
		Appointments: repos.Appointments,
		Users:        repos.Users,
		Mailer:       mailer,
	}
	adminService := &admin.DefaultAdminService{
		Admins:        repos.Admins,
		Doctors:       repos.Doctors,
		Mailer:        mailer,
		Directory:     doctorDirectory,
		TokenTTL:      tokenTTL,
		SignupEnabled: config.AppConfig.AdminSignupEnabled,
	}
	aiService := &intelligence.DefaultAutocompleteService{
		Generator: generator,
		Cache:     intelligence.NewRedisSuggestionCache(utils.GetCacheClient(), 24*time.Hour),
	}

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		middleware.Authenticate(revocations),
		middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin),
		handlers.NewUserHandler(userService),
		handlers.NewDoctorHandler(doctorService),
		handlers.NewAppointmentHandler(bookingService),
		handlers.NewAdminHandler(adminService),
		handlers.NewAIHandler(aiService),
		handlers.NewAuthHandler(revocations),
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(ctx, 60*time.Second, utils.RedisClients(), database.MongoClient)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "9090"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		logger.Error("main: server failed to start", zap.Error(err))
		return err
	case <-ctx.Done():
	}
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if mailWorker != nil {
		mailWorker.Shutdown()
	}
	if err := database.Disconnect(shutdownCtx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}
	logger.Info("main: server stopped gracefully")
	_ = logger.Sync()
	return nil
}

func runMigrate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer database.Disconnect(context.Background())

	repos, err := repository.NewMongoRepositories(ctx)
	if err == nil {
		err = repos.EnsureIndexes(ctx)
	}
	if err != nil {
		logger.Error("migrate: index creation failed", zap.Error(err))
		return err
	}
	logger.Info("migrate: indexes are up to date")
	return nil
}
