package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvBuilder/internal/cv"
	"cvBuilder/internal/metrics"
	"cvBuilder/internal/notify"
	"cvBuilder/internal/photo"
)

// PhotoProcessor 把上传的原图处理成头像。
type PhotoProcessor interface {
	Process(ctx context.Context, upload photo.UploadedImage) (photo.NormalizedImage, error)
}

// PhotoHandler 负责头像上传：限流、扫描、校验、裁剪、写回工作简历。
type PhotoHandler struct {
	workspace *cv.Workspace
	pipeline  PhotoProcessor
	publisher notify.Publisher
	limiter   *windowLimiter
	logger    *slog.Logger
	maxBytes  int64
}

// NewPhotoHandler 构造 PhotoHandler；rate 为 nil 或 uploadsPerHour<=0 时不限流。
func NewPhotoHandler(workspace *cv.Workspace, pipeline PhotoProcessor, publisher notify.Publisher, rate RateCounter, logger *slog.Logger, maxBytes int64, uploadsPerHour int) *PhotoHandler {
	return &PhotoHandler{
		workspace: workspace,
		pipeline:  pipeline,
		publisher: publisher,
		limiter:   newHourlyLimiter(rate, "rate:photo", uploadsPerHour),
		logger:    logger,
		maxBytes:  maxBytes,
	}
}

type photoResult struct {
	FaceDetected bool `json:"face_detected"`
	Fallback     bool `json:"fallback"`
	Side         int  `json:"side"`
}

// Upload 处理 multipart 字段 file 中的头像。
func (h *PhotoHandler) Upload(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	ctx := c.Request.Context()
	logger := requestLogger(c, h.logger).With(slog.String("session_id", sessionID))

	allowed, err := h.limiter.Allow(ctx, sessionID)
	if err != nil {
		logger.Warn("photo rate counter unavailable", slog.Any("error", err))
	}
	if !allowed {
		metrics.ObservePhotoUpload("rate_limited")
		n := notify.RateLimited()
		publish(c, h.publisher, sessionID, n)
		Notify(c, http.StatusTooManyRequests, n)
		return
	}

	upload, err := h.readUpload(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	token := h.workspace.BeginUpload(sessionID)
	out, err := h.pipeline.Process(ctx, upload)
	if err != nil {
		h.workspace.AbortUpload(sessionID, token)
		if errors.Is(err, photo.ErrInvalidImage) {
			logger.Info("photo rejected", slog.Any("error", err))
			metrics.ObservePhotoUpload("rejected")
			n := notify.ForRejection(err)
			publish(c, h.publisher, sessionID, n)
			Notify(c, http.StatusBadRequest, n)
			return
		}
		logger.Error("process photo failed", slog.Any("error", err))
		metrics.ObservePhotoUpload("failed")
		Internal(c, "failed to process photo")
		return
	}

	record, err := h.workspace.CommitUpload(sessionID, token, out.DataURI)
	if errors.Is(err, cv.ErrSuperseded) {
		logger.Info("photo upload superseded")
		metrics.ObservePhotoUpload("superseded")
		Notify(c, http.StatusConflict, notify.UploadSuperseded())
		return
	}
	if err != nil {
		logger.Error("commit photo failed", slog.Any("error", err))
		Internal(c, "failed to store photo")
		return
	}

	metrics.ObservePhotoUpload("accepted")
	c.JSON(http.StatusOK, gin.H{
		"record": record,
		"photo": photoResult{
			FaceDetected: out.FaceDetected,
			Fallback:     out.Fallback,
			Side:         out.Side,
		},
	})
}

func (h *PhotoHandler) readUpload(c *gin.Context) (photo.UploadedImage, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return photo.UploadedImage{}, errors.New("missing file")
	}
	reader, err := file.Open()
	if err != nil {
		return photo.UploadedImage{}, fmt.Errorf("open file: %w", err)
	}
	defer reader.Close()

	// 超出上限的部分不读入内存，Size 仍保留原始大小供校验。
	limit := h.maxBytes
	if limit <= 0 {
		limit = photo.DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(reader, limit+1))
	if err != nil {
		return photo.UploadedImage{}, fmt.Errorf("read file: %w", err)
	}
	return photo.UploadedImage{
		Data:     data,
		MIMEType: file.Header.Get("Content-Type"),
		Size:     file.Size,
	}, nil
}
