package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/jennilaluyan/connect-in-backend/internal/app"
	"github.com/jennilaluyan/connect-in-backend/internal/config"
	"github.com/jennilaluyan/connect-in-backend/internal/database"
	apphttp "github.com/jennilaluyan/connect-in-backend/internal/http"
	"github.com/jennilaluyan/connect-in-backend/internal/http/handlers"
	"github.com/jennilaluyan/connect-in-backend/internal/http/metrics"
	httpmw "github.com/jennilaluyan/connect-in-backend/internal/http/middleware"
	"github.com/jennilaluyan/connect-in-backend/internal/observability"
	"github.com/jennilaluyan/connect-in-backend/internal/repository/postgres"
	"github.com/jennilaluyan/connect-in-backend/internal/security"
	"github.com/jennilaluyan/connect-in-backend/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := observability.NewLogger()

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	if err := database.Apply(context.Background(), db); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply migrations")
	}

	identityRepo := postgres.NewIdentityRepository(db)
	postingRepo := postgres.NewPostingRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	blobs := storage.NewDiskStore(cfg.UploadDir)
	hasher := security.NewPasswordHasher(cfg.BcryptCost)

	authService := app.NewAuthService(identityRepo, sessionRepo, hasher, cfg.SessionTTL, logger)
	profileService := app.NewProfileService(identityRepo, blobs, logger)
	postingService := app.NewPostingService(postingRepo, applicationRepo, blobs, logger)
	applicationService := app.NewApplicationService(applicationRepo, postingRepo, identityRepo, notificationRepo, blobs, logger)
	notificationService := app.NewNotificationService(notificationRepo)
	adminService := app.NewAdminService(identityRepo, postingRepo, applicationRepo, notificationRepo, sessionRepo, blobs, logger)

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := sessionRepo.DeleteExpired(context.Background(), time.Now().UTC().Unix()); err != nil {
				logger.Error().Err(err).Msg("failed to prune expired sessions")
			}
		}
	}()

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if redisLimiter := httpmw.NewRedisLimiter(client, logger); redisLimiter != nil {
			limiter = redisLimiter
			logger.Info().Str("addr", cfg.RedisAddr).Msg("using redis rate limiter")
		}
	}

	collector := metrics.NewCollector()

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:         handlers.NewAuthHandler(authService, limiter),
		ProfileHandler:      handlers.NewProfileHandler(profileService),
		PostingHandler:      handlers.NewPostingHandler(postingService),
		ApplicationHandler:  handlers.NewApplicationHandler(applicationService, limiter),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
		AdminHandler:        handlers.NewAdminHandler(adminService),
		AuthMiddleware:      httpmw.NewAuthMiddleware(authService),
		Metrics:             collector,
		Logger:              logger,
		RequestTimeout:      cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Msg("API started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
