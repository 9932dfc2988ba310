package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/handlers"
	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/service"
	"github.com/jafarshop/storefront/internal/session"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, sessions *session.Registry, admin service.ProductAdmin, events *service.EventRecorder, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))
	router.Use(middleware.PrometheusMiddleware())

	// Root: also the landing page of the auth callback redirect
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Storefront API",
			"endpoints": []string{
				"GET /health",
				"GET /v1/catalog",
				"PATCH /v1/catalog/criteria",
				"PUT /v1/catalog/page",
				"POST /v1/catalog/page/next",
				"POST /v1/catalog/page/prev",
				"POST /v1/catalog/refresh",
				"GET /v1/catalog/products/:id",
				"POST /auth/token",
				"GET /auth/callback",
				"GET /v1/admin/products",
				"GET /v1/admin/events",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "sessions": sessions.Len()})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/token", handlers.HandleIssueToken(cfg, logger))
		authRoutes.GET("/callback", handlers.HandleAuthCallback(cfg, logger))
	}

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Storefront routes (session cookie)
		catalogRoutes := v1.Group("/catalog")
		catalogRoutes.Use(middleware.SessionMiddleware(sessions, cfg.Catalog.SessionTTL))
		{
			catalogRoutes.GET("", handlers.HandleGetCatalog(cfg, logger))
			catalogRoutes.PATCH("/criteria", handlers.HandleSetCriteria(cfg, logger))
			catalogRoutes.PUT("/page", handlers.HandleSetPage(cfg, logger))
			catalogRoutes.POST("/page/next", handlers.HandleNextPage(cfg, logger))
			catalogRoutes.POST("/page/prev", handlers.HandlePrevPage(cfg, logger))
			catalogRoutes.POST("/refresh", handlers.HandleRefreshCatalog(cfg, logger))
			catalogRoutes.GET("/products/:id", handlers.HandleGetCatalogProduct(logger))
		}

		// Admin routes (JWT)
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware(cfg.Admin.JWTSecret, logger))
		{
			adminRoutes.GET("/products", handlers.HandleListAdminProducts(admin, logger))
			adminRoutes.GET("/products/:id", handlers.HandleGetAdminProduct(admin, logger))
			adminRoutes.POST("/products", handlers.HandleCreateAdminProduct(admin, sessions, logger))
			adminRoutes.PUT("/products/:id", handlers.HandleUpdateAdminProduct(admin, sessions, logger))
			adminRoutes.DELETE("/products/:id", handlers.HandleDeleteAdminProduct(admin, sessions, logger))
			adminRoutes.GET("/products/:id/events", handlers.HandleListProductEvents(events, logger))
			adminRoutes.GET("/events", handlers.HandleListAdminEvents(events, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
