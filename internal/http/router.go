package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/auth"
	"github.com/chaizz/lumen-Park/internal/config"
	"github.com/chaizz/lumen-Park/internal/http/controller"
	"github.com/chaizz/lumen-Park/internal/http/middleware"
	"github.com/chaizz/lumen-Park/internal/metrics"
)

func NewRouter(cfg *config.Config, handler *controller.Handler, verifier auth.Verifier, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.ZapLogger(logger),
		middleware.ZapRecovery(logger),
		otelgin.Middleware(cfg.OTELServiceName),
	)

	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// the stream authenticates itself from ?token=
	router.GET("/notifications/stream", handler.Stream)

	notifications := router.Group("/notifications", auth.Bearer(verifier))
	notifications.GET("", handler.ListNotifications)
	notifications.GET("/unread-count", handler.UnreadCount)
	notifications.POST("/read-all", handler.MarkAllRead)
	notifications.POST("/:id/read", handler.MarkRead)

	internal := router.Group("/internal/notifications")
	internal.POST("", handler.CreateNotification)
	internal.POST("/publish", handler.PublishNotification)
	internal.POST("/retract-like", handler.RetractLike)

	return router
}
