package photo

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxBytes     = 2 * 1024 * 1024
	DefaultMinDimension = 300
)

// AllowedTypes are the declared MIME types accepted for upload, matched case-sensitively.
var AllowedTypes = []string{
	"image/jpeg", "image/png", "image/jpg", "image/jfif", "image/pjpeg",
	"image/pjp", "image/gif", "image/bmp", "image/webp",
}

// Validator 按顺序检查类型、大小以及（严格模式下）像素尺寸。
type Validator struct {
	MaxBytes     int64
	MinDimension int
	Strict       bool
}

func NewValidator() Validator {
	return Validator{MaxBytes: DefaultMaxBytes, MinDimension: DefaultMinDimension, Strict: true}
}

// Validate returns nil when the upload may enter the pipeline, otherwise a *RejectionError.
func (v Validator) Validate(u UploadedImage) error {
	if !allowedType(u.MIMEType) {
		return reject(ReasonUnsupportedType, "%q", u.MIMEType)
	}
	if limit := v.maxBytes(); u.size() > limit {
		return reject(ReasonTooLarge, "%d bytes > %d", u.size(), limit)
	}
	if !v.Strict {
		return nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(u.Data))
	if err != nil {
		return reject(ReasonUndecodable, "%v", err)
	}
	minSide := v.MinDimension
	if minSide <= 0 {
		minSide = DefaultMinDimension
	}
	if cfg.Width < minSide || cfg.Height < minSide {
		return reject(ReasonTooSmall, "%dx%d < %dx%d", cfg.Width, cfg.Height, minSide, minSide)
	}
	return nil
}

func (v Validator) maxBytes() int64 {
	if v.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return v.MaxBytes
}

func allowedType(mimeType string) bool {
	for _, t := range AllowedTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

// Decode decodes any registered format (jpeg, png, gif, bmp, webp).
func Decode(data []byte) (DecodedImage, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return DecodedImage{}, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	return DecodedImage{Image: img, Width: b.Dx(), Height: b.Dy()}, nil
}
