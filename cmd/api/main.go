package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dexboard/backend/internal/config"
	"dexboard/backend/internal/handler"
	"dexboard/backend/internal/model"
	"dexboard/backend/internal/repository"
	"dexboard/backend/internal/service"
	"dexboard/backend/pkg/database"
	"dexboard/backend/pkg/gemini"
	"dexboard/backend/pkg/jwt"
	"dexboard/backend/pkg/logger"
	"dexboard/backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file (ignore error in production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log := logger.GetLogger()

	log.Info("Starting DEX dashboard backend...")
	log.Infof("Environment: %s", cfg.Server.Env)

	log.Info("Connecting to database...")
	db, err := database.Open(database.Config{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		SlowQuery:    cfg.Database.SlowQuery,
	}, log)
	if err != nil {
		log.Fatal("Failed to connect to database", err)
	}
	defer database.Close(db)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, model.All()...); err != nil {
			log.Fatal("Failed to migrate database", err)
		}
		log.Info("✓ Database schema up to date")
	}
	log.Info("✓ Database connected")

	log.Info("Connecting to Redis...")
	redis.InitKeys(cfg.Redis.Prefix)
	redisClient, err := redis.New(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	log.Info("✓ Redis connected")

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	jwtManager := jwt.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenExpire)

	geminiClient := gemini.NewClient(gemini.Config{
		APIKey:  cfg.AI.GeminiAPIKey,
		Model:   cfg.AI.GeminiModel,
		BaseURL: cfg.AI.GeminiAPIURL,
		Timeout: cfg.AI.Timeout,
	})
	if !cfg.AI.Enabled() {
		log.Warn("GEMINI_API_KEY not set, AI endpoints will answer 503")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	botRepo := repository.NewBotRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	tokenRepo := repository.NewTokenRepository(redisClient)

	services := handler.Services{
		Auth:      service.NewAuthService(userRepo, tokenRepo, jwtManager, log),
		User:      service.NewUserService(userRepo, log),
		Bot:       service.NewBotService(botRepo, tradeRepo, log),
		Portfolio: service.NewPortfolioService(walletRepo, snapshotRepo, botRepo, log),
		Alert:     service.NewAlertService(alertRepo, botRepo, log),
		Trade:     service.NewTradeService(tradeRepo, log),
		Dashboard: service.NewDashboardService(botRepo, walletRepo, alertRepo, tradeRepo, snapshotRepo),
		Analytics: service.NewAnalyticsService(botRepo, tradeRepo),
		AI:        service.NewAIService(geminiClient, log),
	}

	router := handler.NewRouter(handler.RouterConfig{
		Config:   cfg,
		Services: services,
		DB:       db,
		Redis:    redisClient,
		Logger:   log,
	})

	srv := &http.Server{
		Addr:        cfg.Server.Address(),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// AI answers can take as long as the upstream timeout
		WriteTimeout: cfg.AI.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Server starting on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", err)
		}
	}()

	log.Info("✓ Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", err)
	}

	log.Info("Server exited")
}
