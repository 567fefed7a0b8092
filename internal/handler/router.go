package handler

import (
	"context"
	"net/http"
	"time"

	"dexboard/backend/internal/config"
	"dexboard/backend/internal/middleware"
	"dexboard/backend/internal/service"
	"dexboard/backend/pkg/database"
	"dexboard/backend/pkg/logger"
	"dexboard/backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Services groups everything the HTTP layer calls into
type Services struct {
	Auth      *service.AuthService
	User      *service.UserService
	Bot       *service.BotService
	Portfolio *service.PortfolioService
	Alert     *service.AlertService
	Trade     *service.TradeService
	Dashboard *service.DashboardService
	Analytics *service.AnalyticsService
	AI        *service.AIService
}

// RouterConfig holds the router dependencies. Redis may be nil, rate limiting then stays in process.
type RouterConfig struct {
	Config   *config.Config
	Services Services
	DB       *gorm.DB
	Redis    *redis.Client
	Logger   *logger.Logger
}

// NewRouter builds the gin engine with every API route registered
func NewRouter(rc RouterConfig) *gin.Engine {
	cfg := rc.Config
	log := rc.Logger

	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.RateLimit(rc.Redis, cfg.RateLimit.RequestsPerMinute, log))

	router.GET("/health", healthCheck(rc.DB, rc.Redis))

	authHandler := NewAuthHandler(rc.Services.Auth, rc.Services.User, SessionCookie{
		Name:   cfg.Cookie.Name,
		Secure: cfg.Cookie.Secure,
	})
	userHandler := NewUserHandler(rc.Services.User, authHandler)
	botHandler := NewBotHandler(rc.Services.Bot)
	portfolioHandler := NewPortfolioHandler(rc.Services.Portfolio)
	alertHandler := NewAlertHandler(rc.Services.Alert)
	tradeHandler := NewTradeHandler(rc.Services.Trade)
	dashboardHandler := NewDashboardHandler(rc.Services.Dashboard)
	analyticsHandler := NewAnalyticsHandler(rc.Services.Analytics)
	aiHandler := NewAIHandler(rc.Services.AI)

	requireAuth := middleware.AuthMiddleware(rc.Services.Auth, cfg.Cookie.Name)
	authLimit := middleware.AuthRateLimit(rc.Redis, cfg.RateLimit.AuthRequestsPerMinute, log)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message": "pong",
				"time":    time.Now().Unix(),
			})
		})

		auth := v1.Group("/auth")
		{
			auth.POST("/register", authLimit, authHandler.Register)
			auth.POST("/login", authLimit, authHandler.Login)
			auth.POST("/logout", requireAuth, authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetMe)
			auth.PATCH("/profile", requireAuth, userHandler.UpdateProfile)
			auth.POST("/change-password", requireAuth, userHandler.ChangePassword)
			auth.DELETE("/account", requireAuth, userHandler.DeleteAccount)
		}

		bots := v1.Group("/bots")
		bots.Use(requireAuth)
		{
			bots.GET("", botHandler.ListBots)
			bots.POST("", botHandler.CreateBot)
			bots.GET("/:id", botHandler.GetBot)
			bots.PATCH("/:id", botHandler.UpdateBot)
			bots.DELETE("/:id", botHandler.DeleteBot)
			bots.POST("/:id/start", botHandler.StartBot)
			bots.POST("/:id/stop", botHandler.StopBot)
			bots.GET("/:id/stats", botHandler.GetBotStats)
		}

		portfolio := v1.Group("/portfolio")
		portfolio.Use(requireAuth)
		{
			portfolio.GET("/overview", portfolioHandler.GetOverview)
			portfolio.GET("/assets", portfolioHandler.GetAssets)
			portfolio.GET("/history", portfolioHandler.GetHistory)
			portfolio.POST("/snapshots", portfolioHandler.CaptureSnapshot)

			portfolio.GET("/wallets", portfolioHandler.ListWallets)
			portfolio.POST("/wallets", portfolioHandler.CreateWallet)
			portfolio.GET("/wallets/:id", portfolioHandler.GetWallet)
			portfolio.PATCH("/wallets/:id", portfolioHandler.UpdateWallet)
			portfolio.DELETE("/wallets/:id", portfolioHandler.DeleteWallet)
			portfolio.PUT("/wallets/:id/assets", portfolioHandler.UpsertAsset)
			portfolio.DELETE("/wallets/:id/assets/:symbol", portfolioHandler.DeleteAsset)
		}

		alerts := v1.Group("/alerts")
		alerts.Use(requireAuth)
		{
			alerts.GET("", alertHandler.ListAlerts)
			alerts.POST("", alertHandler.CreateAlert)
			alerts.GET("/history", alertHandler.GetHistory)
			alerts.GET("/:id", alertHandler.GetAlert)
			alerts.PATCH("/:id", alertHandler.UpdateAlert)
			alerts.DELETE("/:id", alertHandler.DeleteAlert)
			alerts.POST("/:id/toggle", alertHandler.ToggleAlert)
		}

		v1.POST("/trades", requireAuth, tradeHandler.RecordTrade)

		dashboard := v1.Group("/dashboard")
		dashboard.Use(requireAuth)
		{
			dashboard.GET("/stats", dashboardHandler.GetStats)
			dashboard.GET("/performance", dashboardHandler.GetPerformance)
			dashboard.GET("/bots-comparison", dashboardHandler.GetBotsComparison)
		}

		analytics := v1.Group("/analytics")
		analytics.Use(requireAuth)
		{
			analytics.GET("", analyticsHandler.GetAnalytics)
			analytics.GET("/stats", analyticsHandler.GetStats)
			analytics.GET("/trades", analyticsHandler.ListTrades)
		}

		ai := v1.Group("/ai")
		ai.Use(requireAuth)
		{
			ai.POST("/chat", aiHandler.Chat)
			ai.POST("/analyze-portfolio", aiHandler.AnalyzePortfolio)
			ai.POST("/optimize-bot", aiHandler.OptimizeBot)
		}
	}

	return router
}

func healthCheck(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "Database connection failed",
			})
			return
		}

		redisStatus := "disabled"
		if redisClient != nil {
			if err := redisClient.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "unhealthy",
					"error":  "Redis connection failed",
				})
				return
			}
			redisStatus = "connected"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "connected",
			"redis":    redisStatus,
		})
	}
}
