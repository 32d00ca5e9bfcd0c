package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"cvBuilder/internal/api/middleware"
	"cvBuilder/internal/cv"
	"cvBuilder/internal/database"
	"cvBuilder/internal/export"
	"cvBuilder/internal/i18n"
	"cvBuilder/internal/metrics"
	"cvBuilder/internal/notify"
	"cvBuilder/internal/pdf"
	"cvBuilder/internal/storage"
	"cvBuilder/internal/tasks"
)

// Exporter 把一份简历导出为单页 PDF。
type Exporter interface {
	Export(ctx context.Context, record cv.Record, locale i18n.Locale) (export.Artifact, error)
}

// TaskEnqueuer 是 asynq.Client 的子集。
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ExportObjects 是导出产物所在对象存储的子集。
type ExportObjects interface {
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration, fileName string) (string, error)
	OpenObject(ctx context.Context, objectKey string) (io.ReadCloser, int64, error)
}

// ExportOptions 控制异步导出任务与下载链接。
type ExportOptions struct {
	MaxRetry    int
	TaskTimeout time.Duration
	PresignTTL  time.Duration
}

// ExportHandler 负责同步下载与异步导出。
type ExportHandler struct {
	db        *gorm.DB
	workspace *cv.Workspace
	exporter  Exporter
	enqueuer  TaskEnqueuer
	objects   ExportObjects
	publisher notify.Publisher
	logger    *slog.Logger
	opts      ExportOptions
}

// NewExportHandler 构造 ExportHandler；exporter 为 nil 时同步导出不可用。
func NewExportHandler(db *gorm.DB, workspace *cv.Workspace, exporter Exporter, enqueuer TaskEnqueuer, objects ExportObjects, publisher notify.Publisher, logger *slog.Logger, opts ExportOptions) *ExportHandler {
	if opts.PresignTTL <= 0 {
		opts.PresignTTL = 15 * time.Minute
	}
	return &ExportHandler{
		db:        db,
		workspace: workspace,
		exporter:  exporter,
		enqueuer:  enqueuer,
		objects:   objects,
		publisher: publisher,
		logger:    logger,
		opts:      opts,
	}
}

var errInvalidExportID = errors.New("invalid export id")

type exportResponse struct {
	ID        uint      `json:"id"`
	Status    string    `json:"status"`
	FileName  string    `json:"file_name"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newExportResponse(row database.Export) exportResponse {
	return exportResponse{
		ID:        row.ID,
		Status:    row.Status,
		FileName:  row.FileName,
		Error:     row.Error,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// Download 在请求内完成导出并直接返回 PDF；失败时不产生任何文件。
func (h *ExportHandler) Download(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	if h.exporter == nil {
		Error(c, http.StatusServiceUnavailable, "synchronous export is not available")
		return
	}
	logger := requestLogger(c, h.logger).With(slog.String("session_id", sessionID))

	start := time.Now()
	artifact, err := h.exporter.Export(c.Request.Context(), h.workspace.Get(sessionID), requestLocale(c))
	if err != nil {
		logger.Error("export cv failed", slog.Any("error", err))
		metrics.ObserveExport("sync", "failed", time.Since(start).Seconds())
		n := notify.ExportFailed()
		publish(c, h.publisher, sessionID, n)
		Notify(c, http.StatusInternalServerError, n)
		return
	}
	metrics.ObserveExport("sync", "completed", time.Since(start).Seconds())
	logger.Info("cv downloaded", slog.String("file_name", artifact.FileName))

	publish(c, h.publisher, sessionID, notify.PDFDownloaded())
	c.Header("Content-Disposition", storage.ContentDisposition(artifact.FileName))
	c.Data(http.StatusOK, "application/pdf", artifact.PDF)
}

// Enqueue 创建导出记录并把简历快照交给 worker，立即返回 202。
func (h *ExportHandler) Enqueue(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	ctx := c.Request.Context()
	logger := requestLogger(c, h.logger).With(slog.String("session_id", sessionID))

	record := h.workspace.Get(sessionID)
	row := database.Export{
		SessionID: sessionID,
		FileName:  pdf.FileName(record.PersonalInfo.FullName),
		Status:    database.ExportStatusQueued,
	}
	if err := h.db.WithContext(ctx).Create(&row).Error; err != nil {
		logger.Error("create export failed", slog.Any("error", err))
		Internal(c, "failed to create export")
		return
	}

	task, err := tasks.NewExportTask(tasks.ExportPayload{
		ExportID:      row.ID,
		SessionID:     sessionID,
		CorrelationID: middleware.GetCorrelationID(c),
		Locale:        requestLocale(c),
		Record:        record,
	}, h.opts.MaxRetry, h.opts.TaskTimeout)
	if err != nil {
		h.markFailed(ctx, &row, "create task failed", logger)
		Internal(c, "failed to create task")
		return
	}

	info, err := h.enqueuer.EnqueueContext(ctx, task)
	if err != nil {
		logger.Error("enqueue export failed", slog.Any("error", err))
		h.markFailed(ctx, &row, "enqueue failed", logger)
		Internal(c, "failed to enqueue export")
		return
	}
	logger.Info("export enqueued", slog.Int("export_id", int(row.ID)), slog.String("task_id", info.ID))

	n := notify.ExportQueued(row.ID)
	publish(c, h.publisher, sessionID, n)
	c.JSON(http.StatusAccepted, gin.H{
		"export":       newExportResponse(row),
		"task_id":      info.ID,
		"notification": n,
	})
}

// Status 返回导出状态。
func (h *ExportHandler) Status(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	row, err := h.getExportForSession(c.Request.Context(), c.Param("id"), sessionID)
	if err != nil {
		h.lookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, newExportResponse(*row))
}

// DownloadLink 生成已完成导出的预签名下载链接。
func (h *ExportHandler) DownloadLink(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	ctx := c.Request.Context()
	row, err := h.getExportForSession(ctx, c.Param("id"), sessionID)
	if err != nil {
		h.lookupError(c, err)
		return
	}
	if !h.ensureReady(c, sessionID, row) {
		return
	}

	url, err := h.objects.GeneratePresignedURL(ctx, row.ObjectKey, h.opts.PresignTTL, row.FileName)
	if err != nil {
		requestLogger(c, h.logger).Error("generate download link failed", slog.Any("error", err))
		Internal(c, "failed to generate download link")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":        url,
		"file_name":  row.FileName,
		"expires_at": time.Now().Add(h.opts.PresignTTL),
	})
}

// File 经由 API 转发已完成导出的 PDF，供无法直连对象存储的客户端使用。
func (h *ExportHandler) File(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	ctx := c.Request.Context()
	row, err := h.getExportForSession(ctx, c.Param("id"), sessionID)
	if err != nil {
		h.lookupError(c, err)
		return
	}
	if !h.ensureReady(c, sessionID, row) {
		return
	}

	reader, size, err := h.objects.OpenObject(ctx, row.ObjectKey)
	if err != nil {
		if storage.IsNoSuchKey(err) {
			NotFound(c, "pdf no longer available")
			return
		}
		requestLogger(c, h.logger).Error("open export object failed", slog.Any("error", err))
		Internal(c, "failed to read pdf")
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, size, "application/pdf", reader, map[string]string{
		"Content-Disposition": storage.ContentDisposition(row.FileName),
	})
}

func (h *ExportHandler) ensureReady(c *gin.Context, sessionID string, row *database.Export) bool {
	if row.Status != database.ExportStatusCompleted || row.ObjectKey == "" {
		Conflict(c, "pdf not ready")
		return false
	}
	if !storage.IsValidExportObjectKey(sessionID, row.ObjectKey) {
		requestLogger(c, h.logger).Error("export object key rejected", slog.String("object_key", row.ObjectKey))
		Internal(c, "invalid export object")
		return false
	}
	return true
}

func (h *ExportHandler) getExportForSession(ctx context.Context, idParam, sessionID string) (*database.Export, error) {
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil || id == 0 {
		return nil, errInvalidExportID
	}
	var row database.Export
	if err := h.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", uint(id), sessionID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (h *ExportHandler) lookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errInvalidExportID):
		BadRequest(c, "invalid export id")
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "export not found")
	default:
		Internal(c, "failed to query export")
	}
}

func (h *ExportHandler) markFailed(ctx context.Context, row *database.Export, reason string, logger *slog.Logger) {
	if err := h.db.WithContext(context.WithoutCancel(ctx)).Model(row).Updates(map[string]any{
		"status": database.ExportStatusFailed,
		"error":  reason,
	}).Error; err != nil {
		logger.Error("mark export failed", slog.Any("error", err))
	}
}
