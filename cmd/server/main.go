package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ekaraca/mekanbul-backend/config"
	"github.com/ekaraca/mekanbul-backend/internal/app/controller"
	"github.com/ekaraca/mekanbul-backend/internal/app/repository"
	"github.com/ekaraca/mekanbul-backend/internal/app/service"
	"github.com/ekaraca/mekanbul-backend/internal/db"
	"github.com/ekaraca/mekanbul-backend/internal/middleware"
	"github.com/ekaraca/mekanbul-backend/internal/router"
	"github.com/ekaraca/mekanbul-backend/internal/scheduler"
	"github.com/ekaraca/mekanbul-backend/internal/storage"
	"github.com/ekaraca/mekanbul-backend/internal/websocket"
	"github.com/ekaraca/mekanbul-backend/pkg/logger"
	"github.com/ekaraca/mekanbul-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      logFormat,
		EnableColor: cfg.Server.Environment == "development",
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to connect to Redis", err)
		}
		defer redis.Close()
	}

	var s3Storage *storage.S3Storage
	if cfg.S3.Bucket != "" {
		s3Storage, err = storage.NewS3Storage(context.Background(), &cfg.S3)
		if err != nil {
			logger.Fatal("Failed to initialize S3 storage", err)
		}
	} else {
		logger.Warn("S3 bucket not configured, image uploads disabled", nil)
	}

	gormDB := db.GetDB()

	userRepo := repository.NewUserRepository(gormDB)
	placeRepo := repository.NewPlaceRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	favoriteRepo := repository.NewFavoriteRepository(gormDB)

	hub := websocket.NewHub()
	go hub.Run()

	authService := service.NewAuthService(userRepo, &cfg.JWT)
	placeService := service.NewPlaceService(placeRepo)
	reviewService := service.NewReviewService(gormDB, reviewRepo, placeRepo, hub)
	favoriteService := service.NewFavoriteService(favoriteRepo, placeRepo)

	ratingScheduler := scheduler.NewRatingScheduler(reviewService)
	if err := ratingScheduler.Start(); err != nil {
		logger.Fatal("Failed to start rating scheduler", err)
	}
	defer ratingScheduler.Stop()

	ctrls := router.Controllers{
		Auth:     controller.NewAuthController(authService),
		Place:    controller.NewPlaceController(placeService, favoriteService),
		Review:   controller.NewReviewController(reviewService),
		Favorite: controller.NewFavoriteController(favoriteService),
		Upload:   controller.NewUploadController(s3Storage),
	}
	authMW := middleware.NewAuthMiddleware(&cfg.JWT)

	engine := router.NewRouter(cfg, ctrls, authMW, hub)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server listening", map[string]interface{}{
			"port":        cfg.Server.Port,
			"environment": cfg.Server.Environment,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", err, nil)
	}
}
