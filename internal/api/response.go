package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvBuilder/internal/api/middleware"
	"cvBuilder/internal/notify"
)

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)   { Error(c, http.StatusConflict, msg) }
func Internal(c *gin.Context, msg string)   { Error(c, http.StatusInternalServerError, msg) }

// Notify 返回带通知的响应；失败状态码同时写入 error 字段，便于不关心通知的客户端。
func Notify(c *gin.Context, status int, n notify.Notification) {
	body := gin.H{"notification": n}
	if status >= http.StatusBadRequest {
		body["error"] = n.Title
	}
	c.JSON(status, body)
}

// publish 把通知推送到会话频道；推送失败只记录日志，不影响响应。
func publish(c *gin.Context, publisher notify.Publisher, sessionID string, n notify.Notification) {
	if publisher == nil {
		return
	}
	n.CorrelationID = middleware.GetCorrelationID(c)
	if err := publisher.Publish(c.Request.Context(), sessionID, n); err != nil {
		requestLogger(c, nil).Warn("publish notification failed",
			slog.String("kind", string(n.Kind)),
			slog.Any("error", err),
		)
	}
}
