package photo

import (
	"bytes"
	"errors"
	"image/png"

	"github.com/disintegration/imaging"
)

const DefaultOutputSide = 250

// Normalizer 把裁剪区域缩放到固定边长的正方形并输出 PNG data URI。
type Normalizer struct {
	Side int
}

// Normalize draws region onto a Side×Side surface, stretching to fill exactly.
// If the surface cannot be produced, the original upload is returned unchanged.
func (n Normalizer) Normalize(img DecodedImage, region CropRegion, original UploadedImage) NormalizedImage {
	side := n.Side
	if side <= 0 {
		side = DefaultOutputSide
	}
	encoded, err := n.draw(img, region, side)
	if err != nil {
		return NormalizedImage{DataURI: original.DataURI(), FaceDetected: region.Face, Region: region, Fallback: true}
	}
	return NormalizedImage{
		DataURI:      dataURI("image/png", encoded),
		Side:         side,
		FaceDetected: region.Face,
		Region:       region,
	}
}

func (n Normalizer) draw(img DecodedImage, region CropRegion, side int) ([]byte, error) {
	if img.Image == nil || !region.Within(img.Width, img.Height) {
		return nil, errors.New("crop region outside image")
	}
	rect := region.rect().Add(img.Image.Bounds().Min)
	cropped := imaging.Crop(img.Image, rect)
	if cropped.Bounds().Empty() {
		return nil, errors.New("empty crop")
	}
	resized := imaging.Resize(cropped, side, side, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
