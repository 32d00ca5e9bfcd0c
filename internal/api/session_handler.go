package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cvBuilder/internal/auth"
	"cvBuilder/internal/cv"
	"cvBuilder/internal/database"
	"cvBuilder/internal/i18n"
	"cvBuilder/internal/storage"
)

// SessionPurger 删除对象存储中某个前缀下的全部对象。
type SessionPurger interface {
	DeletePrefix(ctx context.Context, prefix string) error
}

// SessionHandler 负责创建编辑会话。
type SessionHandler struct {
	sessions  *auth.SessionService
	workspace *cv.Workspace
	db        *gorm.DB
	purger    SessionPurger
	logger    *slog.Logger
}

// NewSessionHandler 构造会话处理器；db 与 purger 可为 nil，此时结束会话只清理内存。
func NewSessionHandler(sessions *auth.SessionService, workspace *cv.Workspace, db *gorm.DB, purger SessionPurger, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, workspace: workspace, db: db, purger: purger, logger: logger}
}

// Create 签发新会话并为其准备一份空白简历。
func (h *SessionHandler) Create(c *gin.Context) {
	session, err := h.sessions.Issue()
	if err != nil {
		requestLogger(c, h.logger).Error("issue session failed", slog.Any("error", err))
		Internal(c, "failed to create session")
		return
	}
	h.workspace.Replace(session.ID, cv.Empty())

	locale := requestLocale(c)
	requestLogger(c, h.logger).Info("session created",
		slog.String("session_id", session.ID),
		slog.String("locale", string(locale)),
	)
	c.JSON(http.StatusCreated, gin.H{
		"session_id": session.ID,
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"locale":     locale,
		"locales":    localeOptions(),
	})
}

// End 结束会话：丢弃工作简历，删除导出记录与对象存储中的 PDF。已保存的简历保留。
func (h *SessionHandler) End(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	ctx := c.Request.Context()
	logger := requestLogger(c, h.logger).With(slog.String("session_id", sessionID))

	h.workspace.Drop(sessionID)
	if h.purger != nil {
		if err := h.purger.DeletePrefix(ctx, storage.ExportPrefix(sessionID)); err != nil {
			logger.Error("purge session exports failed", slog.Any("error", err))
			Internal(c, "failed to purge exports")
			return
		}
	}
	if h.db != nil {
		if err := h.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&database.Export{}).Error; err != nil {
			logger.Error("delete export rows failed", slog.Any("error", err))
			Internal(c, "failed to delete exports")
			return
		}
	}
	logger.Info("session ended")
	c.Status(http.StatusNoContent)
}

type localeOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func localeOptions() []localeOption {
	out := make([]localeOption, 0, len(i18n.Locales))
	for _, l := range i18n.Locales {
		out = append(out, localeOption{Code: string(l), Name: l.DisplayName()})
	}
	return out
}
