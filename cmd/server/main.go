package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soulsync/internal/config"
	"soulsync/internal/handler"
	"soulsync/internal/job"
	"soulsync/internal/kafka"
	"soulsync/internal/middleware"
	"soulsync/internal/model"
	"soulsync/internal/repository"
	"soulsync/internal/service"
	"soulsync/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Register custom binding validators
	if err := model.RegisterValidations(); err != nil {
		logger.Fatal("Failed to register validations", zap.Error(err))
	}

	// Connect the record store, retrying with exponential backoff
	recordStore, err := connectStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect record store", zap.Error(err))
	}
	defer recordStore.Close()

	// Initialize Kafka producer (if enabled)
	var producer *kafka.Producer
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ClientID, logger)
		logger.Info("Initialized Kafka producer", zap.Strings("brokers", cfg.Kafka.Brokers))
	}
	events := kafka.NewEvents(producer, cfg.Kafka.Topic)

	// Create repositories
	userRepo := repository.NewUserRepository(recordStore, logger)
	notificationRepo := repository.NewNotificationRepository(recordStore, logger)
	forumRepo := repository.NewForumRepository(recordStore, logger)
	reportRepo := repository.NewReportRepository(recordStore, logger)
	verificationRepo := repository.NewVerificationRepository(recordStore, logger)

	// Create services
	notificationService := service.NewNotificationService(notificationRepo, events, logger)
	verificationService := service.NewVerificationService(verificationRepo, userRepo, notificationService, events, logger)
	authService := service.NewAuthService(userRepo, verificationService, cfg, logger)
	userService := service.NewUserService(userRepo, logger)
	forumService := service.NewForumService(forumRepo, reportRepo, userRepo, notificationService, events, logger)
	moderationService := service.NewModerationService(reportRepo, forumService, events, logger)

	// Seed the admin account (if configured); admins cannot register
	if cfg.Auth.SeedAdmin.Enabled {
		if err := authService.SeedAdmin(context.Background(), cfg.Auth.SeedAdmin); err != nil {
			logger.Fatal("Failed to seed admin account", zap.Error(err))
		}
	}

	// Start the notification retention sweep (if enabled)
	var retention *job.RetentionJob
	if cfg.Retention.Enabled {
		retention = job.NewRetentionJob(userRepo, notificationService, cfg.Retention.Schedule, cfg.Retention.MaxAge, logger)
		if err := retention.Start(); err != nil {
			logger.Fatal("Failed to start retention job", zap.Error(err))
		}
	}

	// Create HTTP server
	router := setupRouter(
		authService,
		userService,
		notificationService,
		forumService,
		moderationService,
		verificationService,
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if retention != nil {
		retention.Stop()
	}

	if producer != nil {
		producer.Close()
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

func createLogger(level string) (*zap.Logger, error) {
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	zapConfig := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapConfig.Build()
}

// connectStore builds the configured record store backend, retrying
// transient connection failures with exponential backoff
func connectStore(cfg *config.Config, logger *zap.Logger) (store.RecordStore, error) {
	if cfg.Storage.Backend == "memory" {
		logger.Warn("Using in-memory record store; data will not survive a restart")
		return store.NewMemoryStore(), nil
	}

	var recordStore store.RecordStore

	connect := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var err error
		switch cfg.Storage.Backend {
		case "redis":
			recordStore, err = store.NewRedisStore(ctx, cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB, logger)
		case "postgres":
			recordStore, err = store.NewPostgresStore(ctx, cfg.Database, logger)
		default:
			return backoff.Permanent(fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend))
		}

		if err != nil {
			logger.Warn("Record store connection failed, retrying",
				zap.String("backend", cfg.Storage.Backend),
				zap.Error(err))
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cfg.Storage.ConnectTimeout

	if err := backoff.Retry(connect, policy); err != nil {
		return nil, err
	}

	logger.Info("Connected record store", zap.String("backend", cfg.Storage.Backend))
	return recordStore, nil
}

func setupRouter(
	authService *service.AuthService,
	userService *service.UserService,
	notificationService *service.NotificationService,
	forumService *service.ForumService,
	moderationService *service.ModerationService,
	verificationService *service.VerificationService,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")
	{
		// ==================== AUTH ROUTES ====================
		auth := v1.Group("/auth")
		{
			authHandler := handler.NewAuthHandler(authService, logger)

			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh-token", authHandler.RefreshToken)
		}

		// ==================== USER ROUTES ====================
		users := v1.Group("/users")
		{
			users.Use(middleware.AuthMiddleware(authService, logger))

			userHandler := handler.NewUserHandler(userService, logger)
			notifHandler := handler.NewNotificationHandler(notificationService, logger)

			users.GET("/me", userHandler.GetCurrentUser)

			users.GET("/me/notifications", notifHandler.GetNotifications)
			users.GET("/me/notifications/count", notifHandler.GetUnreadCount)
			users.PUT("/me/notifications/:id/read", notifHandler.MarkNotificationAsRead)
			users.PUT("/me/notifications/read-all", notifHandler.MarkAllAsRead)
			users.DELETE("/me/notifications", notifHandler.ClearNotifications)
		}

		// ==================== FORUM ROUTES ====================
		forum := v1.Group("/forum")
		{
			forumHandler := handler.NewForumHandler(forumService, userService, logger)

			// Reads are public; the visibility decision uses the token when
			// one is present
			forumRead := forum.Group("")
			forumRead.Use(middleware.OptionalAuth(authService, logger))
			forumRead.GET("/categories", forumHandler.ListCategories)
			forumRead.GET("/posts", forumHandler.ListPosts)
			forumRead.GET("/posts/:id", forumHandler.GetPost)
			forumRead.GET("/posts/:id/replies", forumHandler.ListReplies)

			// Writes require authentication
			forumWrite := forum.Group("")
			forumWrite.Use(middleware.AuthMiddleware(authService, logger))
			forumWrite.POST("/posts", forumHandler.CreatePost)
			forumWrite.POST("/posts/:id/replies", forumHandler.CreateReply)
			forumWrite.POST("/posts/:id/like", forumHandler.LikePost)
			forumWrite.POST("/reports", forumHandler.CreateReport)
		}

		// ==================== MODERATION ROUTES ====================
		moderation := v1.Group("/moderation")
		{
			moderation.Use(middleware.AuthMiddleware(authService, logger))
			moderation.Use(middleware.RequireRole(userService, model.RoleAdmin, model.RoleProfessional))

			moderationHandler := handler.NewModerationHandler(moderationService, logger)

			moderation.GET("/reports", moderationHandler.PendingReports)
			moderation.PUT("/reports/:id/dismiss", moderationHandler.DismissReport)
			moderation.PUT("/reports/:id/remove", moderationHandler.RemoveContent)
		}

		// ==================== ADMIN ROUTES ====================
		admin := v1.Group("/admin")
		{
			admin.Use(middleware.AuthMiddleware(authService, logger))
			admin.Use(middleware.RequireRole(userService, model.RoleAdmin))

			userHandler := handler.NewUserHandler(userService, logger)
			notifHandler := handler.NewNotificationHandler(notificationService, logger)
			forumHandler := handler.NewForumHandler(forumService, userService, logger)
			verificationHandler := handler.NewVerificationHandler(verificationService, logger)

			admin.GET("/users", userHandler.ListUsers)
			admin.POST("/notifications", notifHandler.CreateNotification)
			admin.POST("/categories", forumHandler.CreateCategory)

			admin.GET("/professionals", verificationHandler.PendingProfessionals)
			admin.PUT("/professionals/:id/verify", verificationHandler.VerifyProfessional)
			admin.DELETE("/professionals/:id", verificationHandler.RejectProfessional)
		}
	}

	return router
}
