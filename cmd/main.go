package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"github.com/rookieryder/golf-backend/config"
	"github.com/rookieryder/golf-backend/db"
	"github.com/rookieryder/golf-backend/handlers"
	"github.com/rookieryder/golf-backend/live"
	"github.com/rookieryder/golf-backend/middleware"
	"github.com/rookieryder/golf-backend/repositories"
	api "github.com/rookieryder/golf-backend/routes"
	"github.com/rookieryder/golf-backend/services"
	"github.com/rookieryder/golf-backend/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.Migrate(dbConn); err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database migrations applied")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация загрузчика файлов (Cloudflare R2), без него загрузка аватаров отключена
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 settings incomplete, profile picture uploads disabled")
	}

	// Кэш погоды: Redis, если задан REDIS_URL, иначе в памяти процесса
	var weatherCache services.WeatherCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid REDIS_URL", slog.Any("error", err))
			os.Exit(1)
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, weather lookups will bypass the cache", slog.Any("error", err))
		}
		weatherCache = services.NewRedisWeatherCache(redisClient)
		logger.Info("weather cache backed by redis")
	} else {
		weatherCache = services.NewMemoryWeatherCache()
	}

	// Инициализация live hub для расшаренных раундов
	hub := live.NewHub()
	go hub.Run(ctx)
	logger.Info("live hub started")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	clubRepo := repositories.NewPostgresClubRepository(dbConn)
	courseRepo := repositories.NewPostgresCourseRepository(dbConn)
	roundRepo := repositories.NewPostgresRoundRepository(dbConn)
	holeScoreRepo := repositories.NewPostgresHoleScoreRepository(dbConn)
	leaderboardRepo := repositories.NewPostgresLeaderboardRepository(dbConn)
	friendshipRepo := repositories.NewPostgresFriendshipRepository(dbConn)
	achievementRepo := repositories.NewPostgresAchievementRepository(dbConn)
	rangeRepo := repositories.NewPostgresDrivingRangeRepository(dbConn)
	tipRepo := repositories.NewPostgresPracticeTipRepository(dbConn)
	dashboardRepo := repositories.NewPostgresDashboardRepository(dbConn)
	logger.Info("repositories initialized")

	// Инициализация сервисов
	weatherService := services.NewWeatherService(services.WeatherConfig{
		APIKey:   cfg.WeatherAPIKey,
		BaseURL:  cfg.WeatherBaseURL,
		Timeout:  cfg.WeatherTimeout,
		CacheTTL: cfg.WeatherCacheTTL,
	}, &http.Client{Timeout: cfg.WeatherTimeout}, weatherCache)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, uploader)
	clubService := services.NewClubService(clubRepo)
	courseService := services.NewCourseService(courseRepo, weatherService)
	achievementService := services.NewAchievementService(achievementRepo, userRepo)
	roundService := services.NewRoundService(roundRepo, holeScoreRepo, achievementService, hub)
	holeScoreService := services.NewHoleScoreService(holeScoreRepo, roundRepo, courseRepo)
	leaderboardService := services.NewLeaderboardService(leaderboardRepo)
	friendshipService := services.NewFriendshipService(friendshipRepo, uploader)
	catalogService := services.NewCatalogService(rangeRepo, tipRepo)
	adminService := services.NewAdminUserService(userRepo, uploader)
	dashboardService := services.NewDashboardService(dashboardRepo)
	logger.Info("services initialized")

	// Периодическая проверка достижений по всем пользователям
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.AchievementSweepSchedule, func() {
		granted, err := achievementService.EvaluateAll(ctx, services.TriggerSweep)
		if err != nil {
			logger.Error("achievement sweep finished with errors", slog.Int("granted", granted), slog.Any("error", err))
			return
		}
		logger.Info("achievement sweep finished", slog.Int("granted", granted))
	})
	if err != nil {
		logger.Error("invalid achievement sweep schedule", slog.String("schedule", cfg.AchievementSweepSchedule), slog.Any("error", err))
		os.Exit(1)
	}
	scheduler.Start()
	logger.Info("achievement sweep scheduled", slog.String("schedule", cfg.AchievementSweepSchedule))

	// Инициализация обработчиков HTTP
	h := api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		User:        handlers.NewUserHandler(userService),
		Club:        handlers.NewClubHandler(clubService),
		Course:      handlers.NewCourseHandler(courseService),
		Weather:     handlers.NewWeatherHandler(weatherService),
		Round:       handlers.NewRoundHandler(roundService, holeScoreService, leaderboardService),
		HoleScore:   handlers.NewHoleScoreHandler(holeScoreService),
		Leaderboard: handlers.NewLeaderboardHandler(leaderboardService),
		Friendship:  handlers.NewFriendshipHandler(friendshipService),
		Achievement: handlers.NewAchievementHandler(achievementService),
		Catalog:     handlers.NewCatalogHandler(catalogService),
		SharedRound: handlers.NewSharedRoundHandler(roundService, hub, cfg.CORSAllowedOrigins),
		Admin:       handlers.NewAdminUserHandler(adminService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService),
	}
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, h, api.Options{
		JWTSecret:      cfg.JWTSecretKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		PublicLimiter:  middleware.NewRateLimiter(cfg.PublicRateLimit, cfg.PublicRateBurst),
		Logger:         logger,
		Ready: func(r *http.Request) error {
			return dbConn.PingContext(r.Context())
		},
	})
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			exitCode = 1
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			exitCode = 1
		} else {
			logger.Info("server shutdown complete")
		}
	}

	// Останавливаем фоновые задачи: cron ждет текущий прогон, hub закрывает подписчиков
	<-scheduler.Stop().Done()
	cancel()
	logger.Info("application exited")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
