package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/food-recommender/internal/cache"
	"github.com/octobees/food-recommender/internal/config"
	"github.com/octobees/food-recommender/internal/database"
	"github.com/octobees/food-recommender/internal/handler"
	"github.com/octobees/food-recommender/internal/logging"
	"github.com/octobees/food-recommender/internal/metrics"
	middlewarepkg "github.com/octobees/food-recommender/internal/middleware"
	"github.com/octobees/food-recommender/internal/provider/kakao"
	"github.com/octobees/food-recommender/internal/provider/naver"
	"github.com/octobees/food-recommender/internal/repository"
	"github.com/octobees/food-recommender/internal/router"
	"github.com/octobees/food-recommender/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	metrics.Init()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var runs repository.RunsRepository = repository.NoopRunsRepository{}
	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()

		pgRuns := repository.NewPGXRunsRepository(pool)
		if err := pgRuns.EnsureSchema(ctx); err != nil {
			logging.Fatal().Err(err).Msg("failed to prepare run log")
		}
		runs = pgRuns
		logging.Info().Msg("run log enabled")
	}

	var mentionCache cache.MentionCache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logging.Warn().Err(err).Msg("redis unavailable, mention cache disabled")
		} else {
			defer client.Close()
			mentionCache = cache.NewRedisMentions(client, cfg.MentionCacheTTL)
			logging.Info().Str("addr", cfg.Redis.Addr).Msg("mention cache enabled")
		}
	}

	httpClient := &http.Client{Timeout: 15 * time.Second}
	kakaoClient := kakao.NewClient(cfg.Kakao, httpClient, cfg.ProviderTimeout)
	naverClient := naver.NewClient(cfg.Naver, httpClient, cfg.ProviderTimeout)

	enricher := service.NewEnricher(naverClient, service.NewSyntheticRatings(nil), mentionCache, cfg.RegionKeyword)
	recommendService := service.NewRecommendService(kakaoClient, kakaoClient, enricher, service.NewSyntheticForecaster(nil), runs, service.RecommendConfig{
		FallbackLat: cfg.FallbackLat,
		FallbackLon: cfg.FallbackLon,
		Workers:     cfg.EnrichWorkers,
	})
	reviewService := service.NewReviewService(naverClient.WithTimeout(cfg.ReviewTimeout), enricher)
	healthService := service.NewHealthService().
		Register("kakao", kakaoClient).
		Register("naver", naverClient)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, router.Handlers{
		Health:    handler.NewHealthHandler(healthService),
		Recommend: handler.NewRecommendHandler(recommendService),
		Reviews:   handler.NewReviewHandler(reviewService),
	})

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("port", cfg.Port).Msg("listening")
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logging.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server error")
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}
