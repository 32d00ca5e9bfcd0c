package photo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
)

// ErrModelUnavailable 表示人脸检测模型无法加载。
var ErrModelUnavailable = errors.New("face detection model unavailable")

// DefaultCascadePath is the fixed relative path of the pigo face cascade.
const DefaultCascadePath = "models/facefinder"

// CascadeSourceURL 是 pigo 官方发布的 facefinder 模型，不随仓库分发，见 models/README.md。
const CascadeSourceURL = "https://raw.githubusercontent.com/esimov/pigo/master/cascade/facefinder"

// PigoDetector runs the pigo cascade. The cascade is read lazily on first use;
// a load failure is remembered and reported on every call.
type PigoDetector struct {
	CascadePath string
	MinQuality  float64
	// MaxSide bounds the detection input; larger images are downscaled first.
	MaxSide int

	once       sync.Once
	classifier *pigo.Pigo
	loadErr    error
}

func NewPigoDetector(cascadePath string, minQuality float64) *PigoDetector {
	if cascadePath == "" {
		cascadePath = DefaultCascadePath
	}
	return &PigoDetector{CascadePath: cascadePath, MinQuality: minQuality, MaxSide: 1024}
}

func (d *PigoDetector) load() (*pigo.Pigo, error) {
	d.once.Do(func() {
		raw, err := os.ReadFile(d.CascadePath)
		if err != nil {
			d.loadErr = fmt.Errorf("%w: %v", ErrModelUnavailable, err)
			return
		}
		classifier, err := pigo.NewPigo().Unpack(raw)
		if err != nil {
			d.loadErr = fmt.Errorf("%w: unpack cascade: %v", ErrModelUnavailable, err)
			return
		}
		d.classifier = classifier
	})
	return d.classifier, d.loadErr
}

// Detect returns the best-scoring face above MinQuality, or nil.
func (d *PigoDetector) Detect(ctx context.Context, img DecodedImage) (*FaceBox, error) {
	classifier, err := d.load()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img.Width <= 0 || img.Height <= 0 {
		return nil, nil
	}

	src := imaging.Clone(img.Image)
	scale := 1.0
	if d.MaxSide > 0 && (img.Width > d.MaxSide || img.Height > d.MaxSide) {
		src = imaging.Fit(src, d.MaxSide, d.MaxSide, imaging.Linear)
		scale = float64(img.Width) / float64(src.Bounds().Dx())
	}
	cols, rows := src.Bounds().Dx(), src.Bounds().Dy()

	minSide := cols
	if rows < minSide {
		minSide = rows
	}
	params := pigo.CascadeParams{
		MinSize:     max(20, minSide/10),
		MaxSize:     minSide,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(src),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}
	dets := classifier.RunCascade(params, 0.0)
	dets = classifier.ClusterDetections(dets, 0.2)

	var best *pigo.Detection
	for i := range dets {
		if float64(dets[i].Q) < d.MinQuality {
			continue
		}
		if best == nil || dets[i].Q > best.Q {
			best = &dets[i]
		}
	}
	if best == nil {
		return nil, nil
	}
	side := int(float64(best.Scale) * scale)
	return &FaceBox{
		X:       int(float64(best.Col)*scale) - side/2,
		Y:       int(float64(best.Row)*scale) - side/2,
		Width:   side,
		Height:  side,
		Quality: float64(best.Q),
	}, nil
}
