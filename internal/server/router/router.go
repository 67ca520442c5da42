package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sebaaaap/Dashboard-prueba1/internal/config"
	"github.com/sebaaaap/Dashboard-prueba1/internal/metrics"
	"github.com/sebaaaap/Dashboard-prueba1/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by New.
type Handlers struct {
	Health  *handlers.HealthHandler
	Upload  *handlers.UploadHandler
	Reports *handlers.ReportsHandler
	// Metrics is optional. When set, requests are measured and /metrics is exposed.
	Metrics *metrics.Metrics
}

// uploadBurst is how many uploads may arrive back to back before the rate applies.
const uploadBurst = 5

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, cfg config.ServerConfig, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	r.GET("/", h.Health.Root)
	r.GET("/health", h.Health.Health)

	upload := r.Group("/upload")
	if cfg.UploadRateLimit > 0 {
		upload.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.UploadRateLimit), uploadBurst), logger))
	}
	upload.POST("/excel", h.Upload.UploadFile)
	upload.POST("/sheet", h.Upload.SyncSheet)

	analytics := r.Group("/analytics")
	analytics.GET("/resumen-mensual", h.Reports.MonthlySummary)
	analytics.GET("/servicios-por-fecha", h.Reports.DateRangeBreakdown)
	analytics.GET("/top-dias", h.Reports.TopDays)
	analytics.GET("/dias/:fecha", h.Reports.DayDetail)

	api := r.Group("/api")
	api.GET("/dashboard/overview", h.Reports.Overview)
	api.GET("/dashboard/revenue-weekly", h.Reports.WeeklyRevenue)
	api.GET("/dashboard/services-popular", h.Reports.PopularServices)
	api.GET("/dashboard/alerts", h.Reports.Alerts)
	api.GET("/servicios/evolucion-trimestral", h.Reports.QuarterlyEvolution)
	api.GET("/servicios/detalle", h.Reports.PeriodServiceDetail)
	api.GET("/finanzas/mensual", h.Reports.MonthlyFinance)
	api.GET("/finanzas/gastos-distribucion", h.Reports.ExpenseDistribution)
	api.GET("/ingresos/resumen", h.Reports.PeriodRevenue)

	if logger != nil {
		logger.Info("router initialized",
			zap.Strings("allowed_origins", cfg.AllowedOrigins),
			zap.Bool("metrics", h.Metrics != nil),
			zap.Float64("upload_rate_limit", cfg.UploadRateLimit))
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	c.AllowCredentials = true
	c.MaxAge = 12 * time.Hour
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
		return c
	}
	c.AllowOrigins = origins
	return c
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

// rateLimitMiddleware rejects requests once the limiter's bucket is empty. It never waits.
func rateLimitMiddleware(limiter *rate.Limiter, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		if limiter.Allow() {
			c.Next()
			return
		}
		logger.Warn("upload rate limit exceeded", zap.String("path", c.Request.URL.Path), zap.String("client_ip", c.ClientIP()))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Demasiadas solicitudes, intenta nuevamente en unos segundos"})
	}
}
