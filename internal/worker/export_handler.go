package worker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"

	"cvBuilder/internal/cv"
	"cvBuilder/internal/database"
	"cvBuilder/internal/export"
	"cvBuilder/internal/i18n"
	"cvBuilder/internal/metrics"
	"cvBuilder/internal/notify"
	"cvBuilder/internal/storage"
	"cvBuilder/internal/tasks"
)

// Exporter renders a record to a PDF artifact.
type Exporter interface {
	Export(ctx context.Context, record cv.Record, locale i18n.Locale) (export.Artifact, error)
}

// ObjectUploader stores finished PDFs.
type ObjectUploader interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// ExportTaskHandler 负责消费 PDF 导出任务。
type ExportTaskHandler struct {
	db        *gorm.DB
	storage   ObjectUploader
	exporter  Exporter
	publisher notify.Publisher
	logger    *slog.Logger

	finalAttempt func(ctx context.Context) bool
}

// NewExportTaskHandler 创建任务处理器。
func NewExportTaskHandler(db *gorm.DB, storage ObjectUploader, exporter Exporter, publisher notify.Publisher, logger *slog.Logger) *ExportTaskHandler {
	return &ExportTaskHandler{
		db:           db,
		storage:      storage,
		exporter:     exporter,
		publisher:    publisher,
		logger:       logger,
		finalAttempt: isFinalAsynqAttempt,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	start := time.Now()
	log := h.logger

	payload, err := tasks.ParseExportPayload(t)
	if err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return errors.Join(err, asynq.SkipRetry)
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("export_id", int(payload.ExportID)),
		slog.String("session_id", payload.SessionID),
	)
	log.Info("starting cv export task")

	var row database.Export
	if err := h.db.WithContext(ctx).First(&row, payload.ExportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("export not found, skipping task")
			return nil
		}
		log.Error("query export failed", slog.Any("error", err))
		return err
	}
	if row.Status == database.ExportStatusCompleted {
		log.Info("export already completed, skipping task")
		return nil
	}

	defer func() {
		if retErr == nil {
			metrics.ObserveExport("async", "completed", time.Since(start).Seconds())
			return
		}
		if !h.finalAttempt(ctx) {
			return
		}
		metrics.ObserveExport("async", "failed", time.Since(start).Seconds())
		if err := h.db.WithContext(context.WithoutCancel(ctx)).Model(&row).Updates(map[string]any{
			"status": database.ExportStatusFailed,
			"error":  truncate(strings.TrimSpace(retErr.Error()), 500),
		}).Error; err != nil {
			log.Error("mark export failed", slog.Any("error", err))
		}
		n := notify.ExportFailed()
		n.CorrelationID = payload.CorrelationID
		n.ExportID = row.ID
		if err := h.publisher.Publish(context.WithoutCancel(ctx), payload.SessionID, n); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	artifact, err := h.exporter.Export(ctx, payload.Record, payload.Locale)
	if err != nil {
		log.Error("export cv failed", slog.Any("error", err))
		return err
	}

	objectName := storage.ExportObjectKey(payload.SessionID, uuid.NewString())
	if _, err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(artifact.PDF), int64(len(artifact.PDF)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		return err
	}

	update := map[string]any{
		"object_key": objectName,
		"file_name":  artifact.FileName,
		"status":     database.ExportStatusCompleted,
		"error":      "",
	}
	if err := h.db.WithContext(ctx).Model(&row).Updates(update).Error; err != nil {
		log.Error("update export failed", slog.Any("error", err))
		// 重试会换新的对象键，这份已无记录指向它
		if derr := h.storage.DeleteObject(context.WithoutCancel(ctx), objectName); derr != nil {
			log.Warn("delete orphaned pdf failed", slog.String("object_key", objectName), slog.Any("error", derr))
		}
		return err
	}

	n := notify.PDFDownloaded()
	n.CorrelationID = payload.CorrelationID
	n.ExportID = row.ID
	if err := h.publisher.Publish(ctx, payload.SessionID, n); err != nil {
		// 产物已落库，通知失败不触发重试。
		log.Warn("publish export notification failed", slog.Any("error", err))
	}

	log.Info("cv export task completed", slog.String("object_key", objectName))
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}

// truncate 截到至多 n 字节，不切开多字节字符。
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
