package api

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/cryptorec/internal/middleware"
)

// RouterConfig carries the tunables of the HTTP surface.
//
// Fields:
//   - RateLimitRequests / RateLimitWindow: per-client token bucket.
//   - RequestTimeout: deadline attached to every request context.
//   - AdminUser / AdminPassword: basic auth account for /admin.
type RouterConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
	AdminUser         string
	AdminPassword     string
}

// NewRouter creates a Gin engine with routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter, Timeout).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures the /cryptos routes and, when the handler has a Maintainer, /admin.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		middleware.Timeout(cfg.RequestTimeout),
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// The static "normalized-range" segment wins over ":symbol" in gin's tree.
	cryptos := router.Group("/cryptos")
	{
		cryptos.GET("/normalized-range", handler.GetNormalizedRanges)
		cryptos.GET("/normalized-range/highest", handler.GetHighestNormalizedRange)
		cryptos.GET("/:symbol/stats", handler.GetStats)
	}

	if handler.admin != nil {
		admin := router.Group("/admin", middleware.AdminAuth(cfg.AdminUser, cfg.AdminPassword))
		{
			admin.POST("/ingest", handler.Ingest)
			admin.DELETE("/prices", handler.ResetPrices)
		}
	}

	return router
}
