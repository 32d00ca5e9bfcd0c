package photo

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvBuilder/internal/config"
)

type fakeDetector struct {
	box   *FaceBox
	err   error
	panic bool
}

func (d fakeDetector) Detect(context.Context, DecodedImage) (*FaceBox, error) {
	if d.panic {
		panic("detector exploded")
	}
	return d.box, d.err
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func reason(t *testing.T, err error) string {
	t.Helper()
	var rej *RejectionError
	require.True(t, errors.As(err, &rej), "expected RejectionError, got %v", err)
	assert.True(t, errors.Is(err, ErrInvalidImage))
	return rej.Reason
}

func TestValidateRejectsDisallowedTypeRegardlessOfSize(t *testing.T) {
	v := NewValidator()
	data := pngBytes(t, 320, 320)
	for _, mime := range []string{"image/svg+xml", "image/tiff", "IMAGE/PNG", "application/pdf", ""} {
		for _, size := range []int64{1, 1024, DefaultMaxBytes + 10} {
			err := v.Validate(UploadedImage{Data: data, MIMEType: mime, Size: size})
			assert.Equal(t, ReasonUnsupportedType, reason(t, err), "mime=%q size=%d", mime, size)
		}
	}
}

func TestValidateSizeBoundary(t *testing.T) {
	v := NewValidator()
	data := pngBytes(t, 300, 300)

	require.NoError(t, v.Validate(UploadedImage{Data: data, MIMEType: "image/png", Size: DefaultMaxBytes}))

	err := v.Validate(UploadedImage{Data: data, MIMEType: "image/png", Size: DefaultMaxBytes + 1})
	assert.Equal(t, ReasonTooLarge, reason(t, err))
}

func TestValidateAcceptsEveryAllowedType(t *testing.T) {
	v := Validator{Strict: false}
	for _, mime := range AllowedTypes {
		assert.NoError(t, v.Validate(UploadedImage{Data: []byte("x"), MIMEType: mime, Size: 1}), mime)
	}
}

func TestValidateStrictDimensions(t *testing.T) {
	v := NewValidator()

	err := v.Validate(UploadedImage{Data: pngBytes(t, 200, 250), MIMEType: "image/png", Size: 1000})
	assert.Equal(t, ReasonTooSmall, reason(t, err))

	err = v.Validate(UploadedImage{Data: pngBytes(t, 600, 299), MIMEType: "image/png", Size: 1000})
	assert.Equal(t, ReasonTooSmall, reason(t, err))

	err = v.Validate(UploadedImage{Data: []byte("not an image"), MIMEType: "image/jpeg", Size: 12})
	assert.Equal(t, ReasonUndecodable, reason(t, err))

	lenient := v
	lenient.Strict = false
	assert.NoError(t, lenient.Validate(UploadedImage{Data: pngBytes(t, 200, 250), MIMEType: "image/png"}))
}

func TestCenterSquare(t *testing.T) {
	assert.Equal(t, CropRegion{X: 100, Y: 0, Width: 200, Height: 200}, CenterSquare(400, 200))
	assert.Equal(t, CropRegion{X: 0, Y: 150, Width: 300, Height: 300}, CenterSquare(300, 600))
	assert.Equal(t, CropRegion{X: 0, Y: 0, Width: 500, Height: 500}, CenterSquare(500, 500))
}

func TestCropRegionFallsBackWithoutFace(t *testing.T) {
	img := DecodedImage{Width: 400, Height: 200}
	for _, d := range []FaceDetector{
		nil,
		fakeDetector{},
		fakeDetector{err: ErrModelUnavailable},
		fakeDetector{panic: true},
	} {
		c := NewCropper(d, nil)
		assert.Equal(t, CropRegion{X: 100, Y: 0, Width: 200, Height: 200}, c.CropRegion(context.Background(), img))
	}
}

func TestCropRegionFromFace(t *testing.T) {
	c := NewCropper(fakeDetector{box: &FaceBox{X: 200, Y: 200, Width: 100, Height: 100}}, nil)
	got := c.CropRegion(context.Background(), DecodedImage{Width: 1000, Height: 1000})
	// margin 120: x = 200-60, y = 200-72, size 220
	assert.Equal(t, CropRegion{X: 140, Y: 128, Width: 220, Height: 220, Face: true}, got)
}

func TestCropRegionStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		w, h := 1+rng.Intn(1200), 1+rng.Intn(1200)
		var d FaceDetector
		if rng.Intn(4) > 0 {
			d = fakeDetector{box: &FaceBox{
				X:      rng.Intn(w+200) - 100,
				Y:      rng.Intn(h+200) - 100,
				Width:  1 + rng.Intn(w+50),
				Height: 1 + rng.Intn(h+50),
			}}
		}
		c := NewCropper(d, nil)
		c.MarginRatio = []float64{0.7, 1.2}[rng.Intn(2)]
		r := c.CropRegion(context.Background(), DecodedImage{Width: w, Height: h})
		if !r.Within(w, h) {
			t.Fatalf("region %+v escapes %dx%d (detector %+v)", r, w, h, d)
		}
	}
}

func TestNormalizeFallsBackToOriginal(t *testing.T) {
	original := UploadedImage{Data: []byte("raw"), MIMEType: "image/gif"}
	out := Normalizer{Side: 250}.Normalize(DecodedImage{Width: 10, Height: 10}, CropRegion{X: 5, Y: 5, Width: 10, Height: 10}, original)
	assert.True(t, out.Fallback)
	assert.Equal(t, "data:image/gif;base64,"+base64.StdEncoding.EncodeToString([]byte("raw")), out.DataURI)
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()
	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(uri, prefix), "unexpected data uri prefix: %.40s", uri)
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestPipelineWithoutFaceModel(t *testing.T) {
	data := pngBytes(t, 500, 500)
	require.Less(t, len(data), DefaultMaxBytes)

	p := &Pipeline{
		Validator:  NewValidator(),
		Cropper:    NewCropper(NewPigoDetector("testdata/does-not-exist", 5), nil),
		Normalizer: Normalizer{Side: DefaultOutputSide},
	}
	out, err := p.Process(context.Background(), UploadedImage{Data: data, MIMEType: "image/png", Size: int64(len(data))})
	require.NoError(t, err)
	assert.False(t, out.FaceDetected)
	assert.False(t, out.Fallback)

	img := decodeDataURI(t, out.DataURI)
	assert.Equal(t, DefaultOutputSide, img.Bounds().Dx())
	assert.Equal(t, DefaultOutputSide, img.Bounds().Dy())
}

func TestPipelineFaceCropIsSquareOutput(t *testing.T) {
	data := pngBytes(t, 800, 600)
	p := &Pipeline{
		Validator:  NewValidator(),
		Cropper:    NewCropper(fakeDetector{box: &FaceBox{X: 350, Y: 200, Width: 120, Height: 150}}, nil),
		Normalizer: Normalizer{Side: 125},
	}
	out, err := p.Process(context.Background(), UploadedImage{Data: data, MIMEType: "image/png"})
	require.NoError(t, err)
	assert.True(t, out.FaceDetected)
	img := decodeDataURI(t, out.DataURI)
	assert.Equal(t, image.Pt(125, 125), img.Bounds().Size())
}

type rejectingScanner struct{}

func (rejectingScanner) Scan(context.Context, []byte) error {
	return reject(ReasonMalicious, "Eicar-Test-Signature")
}

func TestPipelineScannerRejectsBeforeValidation(t *testing.T) {
	p := &Pipeline{Scanner: rejectingScanner{}, Validator: NewValidator()}
	_, err := p.Process(context.Background(), UploadedImage{Data: []byte("x"), MIMEType: "text/plain"})
	assert.Equal(t, ReasonMalicious, reason(t, err))
}

func TestPipelineRejectsBeforeDecoding(t *testing.T) {
	p := &Pipeline{Validator: NewValidator()}
	_, err := p.Process(context.Background(), UploadedImage{Data: pngBytes(t, 100, 100), MIMEType: "image/png"})
	assert.Equal(t, ReasonTooSmall, reason(t, err))
}

func TestPigoDetectorReportsMissingModel(t *testing.T) {
	d := NewPigoDetector("testdata/missing-cascade", 5)
	_, err := d.Detect(context.Background(), DecodedImage{Image: image.NewGray(image.Rect(0, 0, 10, 10)), Width: 10, Height: 10})
	assert.True(t, errors.Is(err, ErrModelUnavailable))
	_, err = d.Detect(context.Background(), DecodedImage{})
	assert.True(t, errors.Is(err, ErrModelUnavailable))
}

func TestNewPipelineWarnsWhenCascadeMissing(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	cfg := config.DefaultPhoto()
	cfg.CascadePath = filepath.Join(t.TempDir(), "facefinder")
	NewPipeline(cfg, logger)

	assert.Contains(t, buf.String(), "face cascade not found")
	assert.Contains(t, buf.String(), CascadeSourceURL)
}

func TestParseDataURI(t *testing.T) {
	u := UploadedImage{Data: []byte{1, 2, 3}, MIMEType: "image/png"}
	mimeType, data, err := ParseDataURI(u.DataURI())
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, []byte{1, 2, 3}, data)

	_, _, err = ParseDataURI("https://example.com/a.png")
	assert.Error(t, err)
	_, _, err = ParseDataURI("data:image/png,plain")
	assert.Error(t, err)
}
