package photo

import (
	"context"
	"log/slog"
	"os"

	"cvBuilder/internal/config"
)

// Pipeline 串联扫描、校验、解码、裁剪与归一化，每一步都在上一步完成后执行。
type Pipeline struct {
	Scanner    Scanner
	Validator  Validator
	Cropper    Cropper
	Normalizer Normalizer
	Logger     *slog.Logger
}

// NewPipeline 按配置组装完整的照片处理流水线；未配置 clamd 时跳过病毒扫描。
func NewPipeline(cfg config.PhotoConfig, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	var scanner Scanner
	if cfg.ClamdAddr != "" {
		scanner = ClamdScanner{Addr: cfg.ClamdAddr}
	}
	detector := NewPigoDetector(cfg.CascadePath, cfg.MinFaceQuality)
	if _, err := os.Stat(detector.CascadePath); err != nil {
		logger.Warn("face cascade not found, photos will use the center crop",
			slog.String("cascade_path", detector.CascadePath),
			slog.String("download", CascadeSourceURL),
		)
	}
	cropper := NewCropper(detector, logger)
	cropper.MarginRatio = cfg.MarginRatio
	cropper.UpwardBias = cfg.UpwardBias
	return &Pipeline{
		Scanner:    scanner,
		Validator:  Validator{MaxBytes: cfg.MaxBytes, MinDimension: cfg.MinDimension, Strict: cfg.Strict},
		Cropper:    cropper,
		Normalizer: Normalizer{Side: cfg.OutputSide},
		Logger:     logger,
	}
}

// Process returns a *RejectionError when the upload is refused; any later problem degrades instead of failing.
func (p *Pipeline) Process(ctx context.Context, upload UploadedImage) (NormalizedImage, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if p.Scanner != nil {
		if err := p.Scanner.Scan(ctx, upload.Data); err != nil {
			return NormalizedImage{}, err
		}
	}
	if err := p.Validator.Validate(upload); err != nil {
		return NormalizedImage{}, err
	}

	decoded, err := Decode(upload.Data)
	if err != nil {
		// 非严格模式下未做尺寸校验，解码失败时保留原图。
		logger.Warn("decode upload, keeping original", slog.Any("error", err))
		return NormalizedImage{DataURI: upload.DataURI(), Fallback: true}, nil
	}
	if err := ctx.Err(); err != nil {
		return NormalizedImage{}, err
	}

	region := p.Cropper.CropRegion(ctx, decoded)
	out := p.Normalizer.Normalize(decoded, region, upload)
	logger.Info("photo normalized",
		slog.Bool("face_detected", out.FaceDetected),
		slog.Bool("fallback", out.Fallback),
		slog.Int("side", out.Side),
	)
	return out, nil
}
