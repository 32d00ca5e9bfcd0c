package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cvBuilder/internal/api/middleware"
	"cvBuilder/internal/config"
	"cvBuilder/internal/metrics"
)

// NewRouter 构建 Gin 路由引擎：关联 ID、请求日志、指标采集，以及健康检查和受保护的 /metrics。
func NewRouter(cfg *config.Config, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.CorrelationIDMiddleware(),
		middleware.SlogLoggerMiddleware(logger),
		metrics.GinMiddleware(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", middleware.InternalSecretMiddleware(cfg.API.InternalSecret), gin.WrapH(promhttp.Handler()))

	return router
}
