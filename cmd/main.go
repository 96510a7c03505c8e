package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	configs "github.com/Naseebullah-Wali/MoProject/config"
	"github.com/Naseebullah-Wali/MoProject/internal/constants"
	"github.com/Naseebullah-Wali/MoProject/internal/handler"
	"github.com/Naseebullah-Wali/MoProject/internal/middleware"
	"github.com/Naseebullah-Wali/MoProject/internal/repository"
	"github.com/Naseebullah-Wali/MoProject/internal/router"
	"github.com/Naseebullah-Wali/MoProject/internal/service"
	"github.com/Naseebullah-Wali/MoProject/pkg/blob"
	"github.com/Naseebullah-Wali/MoProject/pkg/circuit"
	"github.com/Naseebullah-Wali/MoProject/pkg/database"
	"github.com/Naseebullah-Wali/MoProject/pkg/logger"
	"github.com/Naseebullah-Wali/MoProject/pkg/redis"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize Zap logger
	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
		ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	if err := database.Seed(db); err != nil {
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
		// Don't fail - seed data may already exist
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	redisClient := redis.NewClient(redis.Config{
		Host:         config.Redis.Host,
		Port:         config.Redis.Port,
		Password:     config.Redis.Password,
		DB:           config.Redis.Database,
		Enabled:      config.Redis.Enabled,
		PoolSize:     config.Redis.PoolSize,
		MinIdleConns: config.Redis.MinIdleConns,
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
	}, logger.GetLogger())
	defer redisClient.Close()

	logger.GetLogger().Info("Redis client initialized",
		zap.Bool("enabled", redisClient.IsEnabled()),
	)

	photoStore, err := blob.NewStore(blob.Config{
		Endpoint:      config.Blob.Endpoint,
		AccessKey:     config.Blob.AccessKey,
		SecretKey:     config.Blob.SecretKey,
		Bucket:        config.Blob.Bucket,
		UseSSL:        config.Blob.UseSSL,
		PublicBaseURL: config.Blob.PublicBaseURL,
	}, logger.GetLogger())
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize blob store", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := photoStore.EnsureBucket(ctx); err != nil {
		logger.GetLogger().Fatal("Failed to ensure blob bucket", zap.Error(err))
	}

	// Services
	tokenService := service.NewTokenService(config.JWT.Secret, config.JWT.ExpirationTime)
	revocations := service.NewRedisRevocationList(redisClient)
	auditRecorder := service.NewAuditRecorder(auditRepo)

	mailBreaker := circuit.NewBreaker("sendgrid", circuit.DefaultConfig(), logger.GetLogger())
	mailer, err := service.NewSendGridMailer(
		config.Mail.SendGridAPIKey,
		config.Mail.FromName,
		config.Mail.FromEmail,
		config.App.Name,
		mailBreaker,
	)
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize mailer", zap.Error(err))
	}

	identityService := service.NewIdentityService(
		userRepo,
		roleRepo,
		companyRepo,
		tokenService,
		mailer,
		revocations,
		auditRecorder,
		config.App.FrontendBaseURL,
	)
	defer identityService.Close()

	userService := service.NewUserService(userRepo, roleRepo, companyRepo, photoStore, auditRecorder)

	// Handlers
	authHandler := handler.NewAuthHandler(identityService)
	userHandler := handler.NewUserHandler(identityService, userService)
	healthHandler := handler.NewHealthHandler(db, redisClient, photoStore)

	jwtMiddleware := middleware.NewJWTMiddleware(tokenService, identityService, userRepo)

	r := router.NewRouter(
		authHandler,
		userHandler,
		healthHandler,
		jwtMiddleware,
		config,
	).SetupRoutes()

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := r.Run(":" + config.App.Port); err != nil {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")
}
