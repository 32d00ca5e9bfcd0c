package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"cvBuilder/internal/api/middleware"
	"cvBuilder/internal/i18n"
)

func sessionIDFromContext(c *gin.Context) (string, bool) {
	id := middleware.SessionIDFromContext(c)
	return id, id != ""
}

func requestLogger(c *gin.Context, fallback *slog.Logger) *slog.Logger {
	if _, ok := c.Get(middleware.SlogLoggerKey); ok {
		return middleware.LoggerFromContext(c)
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}

// requestLocale 优先使用 ?lang=，其次 Accept-Language。
func requestLocale(c *gin.Context) i18n.Locale {
	return i18n.Negotiate(c.Query("lang"), c.GetHeader("Accept-Language"))
}
