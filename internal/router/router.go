package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/iqbalrpambudi/disc-examination/internal/config"
	"github.com/iqbalrpambudi/disc-examination/internal/handler"
	"github.com/iqbalrpambudi/disc-examination/internal/middleware"
	"github.com/iqbalrpambudi/disc-examination/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Assessment *handler.AssessmentHandler
	Report     *handler.ReportHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Brotli for JSON payloads; binary PDF downloads are already dense
	// and are streamed uncompressed.
	brotliConfig := middleware.DefaultBrotliConfig
	brotliConfig.Skipper = func(c *gin.Context) bool {
		return strings.HasSuffix(c.Request.URL.Path, "/report/pdf")
	}
	router.Use(middleware.BrotliWithConfig(brotliConfig))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for outbound mail (5 requests per minute per IP).
	sendLimiter := middleware.NewRateLimiter(5, time.Minute)

	// ─── 1. Assessment Group ───────────────────────────────────────────
	assessments := router.Group("/api/v1/assessments")
	{
		assessments.POST("", handlers.Assessment.CreateSession)
		assessments.GET("/:token", handlers.Assessment.GetSession)
		assessments.POST("/:token/start", handlers.Assessment.StartSession)
		assessments.PUT("/:token/answers", handlers.Assessment.RecordAnswer)
		assessments.POST("/:token/next", handlers.Assessment.Advance)
		assessments.POST("/:token/prev", handlers.Assessment.Retreat)
		assessments.POST("/:token/complete", handlers.Assessment.Complete)
		assessments.POST("/:token/reset", handlers.Assessment.Reset)

		assessments.GET("/:token/report", handlers.Report.GetReport)
		assessments.GET("/:token/report/pdf", handlers.Report.ExportPDF)
		assessments.POST("/:token/send", sendLimiter.Middleware(), handlers.Report.SendReport)
	}

	// ─── 2. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/assessments/:token/timer", handlers.WS.TimerStream)
	}

	return router
}
