package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/finalqc/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by the router. Notifications may
// be nil when WhatsApp is not configured.
type Handlers struct {
	Inspections   *handlers.InspectionHandler
	AQL           *handlers.AQLHandler
	Reports       *handlers.ReportHandler
	Notifications *handlers.NotificationHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		inspections := api.Group("/inspections")
		inspections.POST("", h.Inspections.Create)
		inspections.GET("", h.Inspections.List)
		inspections.GET("/export", h.Inspections.Export)
		inspections.GET("/:id", h.Inspections.Get)
		inspections.PUT("/:id", h.Inspections.Update)
		inspections.GET("/:id/report", h.Inspections.Report)

		api.GET("/aql/plan", h.AQL.Plan)
		api.GET("/reports/summary", h.Reports.Summary)

		if h.Notifications != nil {
			api.POST("/notifications", h.Notifications.Send)
		}
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("request completed", fields...)
			return
		}
		logger.Info("request completed", fields...)
	}
}
