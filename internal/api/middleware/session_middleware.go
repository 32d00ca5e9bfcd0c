package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvBuilder/internal/auth"
)

const sessionIDKey = "sessionID"

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// SessionMiddleware 校验会话令牌并将 sessionID 注入上下文。
func SessionMiddleware(sessions *auth.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c)
			return
		}

		claims, err := sessions.Validate(parts[1])
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(sessionIDKey, claims.SessionID)
		c.Next()
	}
}

// SessionIDFromContext 返回已通过校验的会话 ID，未鉴权时为空串。
func SessionIDFromContext(c *gin.Context) string {
	if value, ok := c.Get(sessionIDKey); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

// SetSessionID is used by tests and by callers that authenticate by other means.
func SetSessionID(c *gin.Context, sessionID string) {
	c.Set(sessionIDKey, sessionID)
}
