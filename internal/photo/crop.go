package photo

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"cvBuilder/internal/metrics"
)

const (
	DefaultMarginRatio = 1.2
	DefaultUpwardBias  = 0.6
)

// FaceDetector finds at most one face. A nil box with nil error means no face.
type FaceDetector interface {
	Detect(ctx context.Context, img DecodedImage) (*FaceBox, error)
}

// Cropper 选择裁剪区域：检测到人脸时以人脸加边距为准，否则取居中正方形。
type Cropper struct {
	Detector    FaceDetector
	MarginRatio float64
	// UpwardBias is the share of the margin added above the face, leaving room for hair.
	UpwardBias float64
	Logger     *slog.Logger
}

// CropRegion never fails; detector errors and panics fall back to the center square.
func (c Cropper) CropRegion(ctx context.Context, img DecodedImage) CropRegion {
	face := c.detect(ctx, img)
	if face == nil {
		metrics.ObserveCrop("center")
		return CenterSquare(img.Width, img.Height)
	}
	region := FaceRegion(*face, img.Width, img.Height, c.marginRatio(), c.upwardBias())
	if !region.Within(img.Width, img.Height) {
		metrics.ObserveCrop("center")
		return CenterSquare(img.Width, img.Height)
	}
	metrics.ObserveCrop("face")
	c.logger().Info("face crop", slog.Int("x", region.X), slog.Int("y", region.Y),
		slog.Int("width", region.Width), slog.Int("height", region.Height))
	return region
}

func (c Cropper) detect(ctx context.Context, img DecodedImage) (face *FaceBox) {
	if c.Detector == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger().Warn("face detector panicked", slog.Any("error", fmt.Errorf("%v", r)))
			face = nil
		}
	}()
	box, err := c.Detector.Detect(ctx, img)
	if err != nil {
		c.logger().Warn("face detection unavailable, using center crop", slog.Any("error", err))
		return nil
	}
	return box
}

func (c Cropper) marginRatio() float64 {
	if c.MarginRatio <= 0 {
		return DefaultMarginRatio
	}
	return c.MarginRatio
}

func (c Cropper) upwardBias() float64 {
	if c.UpwardBias < 0 {
		return DefaultUpwardBias
	}
	return c.UpwardBias
}

func (c Cropper) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// FaceRegion expands the face box by max(w,h)*marginRatio: half the margin to the left,
// upwardBias of it above, clamped to the w×h image.
func FaceRegion(face FaceBox, w, h int, marginRatio, upwardBias float64) CropRegion {
	margin := math.Max(float64(face.Width), float64(face.Height)) * marginRatio

	sx := math.Max(0, float64(face.X)-margin/2)
	sy := math.Max(0, float64(face.Y)-margin*upwardBias)
	x := clampInt(int(math.Floor(sx)), 0, w-1)
	y := clampInt(int(math.Floor(sy)), 0, h-1)

	sw := math.Min(float64(w-x), float64(face.Width)+margin)
	sh := math.Min(float64(h-y), float64(face.Height)+margin)

	return CropRegion{
		X:      x,
		Y:      y,
		Width:  clampInt(int(math.Round(sw)), 1, w-x),
		Height: clampInt(int(math.Round(sh)), 1, h-y),
		Face:   true,
	}
}

// CenterSquare is the largest square that fits, centered on the longer axis.
func CenterSquare(w, h int) CropRegion {
	side := w
	if h < side {
		side = h
	}
	return CropRegion{X: (w - side) / 2, Y: (h - side) / 2, Width: side, Height: side}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func NewCropper(detector FaceDetector, logger *slog.Logger) Cropper {
	return Cropper{Detector: detector, MarginRatio: DefaultMarginRatio, UpwardBias: DefaultUpwardBias, Logger: logger}
}
