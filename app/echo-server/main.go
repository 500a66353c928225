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

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/app/echo-server/router"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/business/bandit"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/internal/middleware"
	psqlRepo "github.com/vinayakvadoothker/x-recruiter-poc-sub001/internal/repository/postgres"
	redisRepo "github.com/vinayakvadoothker/x-recruiter-poc-sub001/internal/repository/redis"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/internal/rest"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/pkg/config"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/pkg/database"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/pkg/logger"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting x-recruiter bandit engine", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := psqlRepo.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	logger.Info("Database connected successfully")

	// Init repos
	interactionRepo := psqlRepo.NewInteractionRepository(db)
	cfgRepo := psqlRepo.NewBanditConfigRepository(db)

	// State store: redis cache when configured, postgres otherwise
	var stateRepo bandit.StateRepository = psqlRepo.NewBanditStateRepository(db)
	if cfg.Redis.Addr != "" {
		client, err := database.InitRedis(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		ttl := time.Duration(cfg.Redis.StateTTLSeconds) * time.Second
		stateRepo = redisRepo.NewStateCache(client, ttl)
		logger.Info("Redis state cache enabled", "addr", cfg.Redis.Addr)
	}

	engineCfg := bandit.DefaultConfig()
	engineCfg.PriorBudget = cfg.Bandit.PriorBudget
	engineCfg.LambdaFG = cfg.Bandit.LambdaFG
	engineCfg.BonusScale = cfg.Bandit.BonusScale
	engineCfg.SuccessThreshold = cfg.Bandit.SuccessThreshold
	engineCfg.ConfidenceLevel = cfg.Bandit.ConfidenceLevel
	engineCfg.Seed = cfg.Bandit.Seed
	engineCfg.MaxIdleContexts = cfg.Bandit.MaxIdleContexts

	// Init service; similarity scores arrive with the initialize request,
	// so no in-process similarity source is wired here.
	banditService := bandit.NewBanditService(
		stateRepo,
		interactionRepo,
		cfgRepo,
		nil,
		bandit.NoopEligibilityChecker{},
		engineCfg,
	)

	// Init handlers
	banditHandler := rest.NewBanditHandler(banditService)
	adminHandler := rest.NewBanditAdminHandler(cfgRepo)

	metrics.Init()

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	router.SetBanditRoutes(api, banditHandler)
	router.SetBanditAdminRoutes(api, adminHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("HTTP server listening", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server stopped unexpectedly", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
