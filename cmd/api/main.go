// @title ProvaFoco API
// @version 1.0
// @description Question bank and study statistics for public exam candidates.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_SESSION_TOKEN' to authorize, or rely on the session_token cookie.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"provafoco/internal/adapter"
	"provafoco/internal/adapter/explainer"
	"provafoco/internal/cache"
	"provafoco/internal/config"
	"provafoco/internal/database"
	"provafoco/internal/domain"
	"provafoco/internal/logger"
	"provafoco/internal/observability"
	"provafoco/internal/server"

	_ "provafoco/cmd/api/docs"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, cfg.Logger.Env)
	if err != nil {
		appLogger.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis is optional: without it filter choices are recomputed and guest logs are not kept.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Successfully connected to Redis")
		}
	}

	var explanationGenerator domain.ExplanationGenerator
	if cfg.LLM.Server != "" {
		explanationGenerator, err = explainer.NewOllamaExplainer(cfg.LLM)
		if err != nil {
			appLogger.Warn("LLM explainer disabled", zap.Error(err))
			explanationGenerator = nil
		} else {
			appLogger.Info("LLM explainer initialized", zap.String("model", cfg.LLM.Model))
		}
	}

	app, err := server.New(cfg, server.Deps{DB: db, Cache: cacheAdapter, Explainer: explanationGenerator})
	if err != nil {
		appLogger.Fatal("Failed to build server", zap.Error(err))
	}

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLogger.Warn("Failed to flush traces", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
