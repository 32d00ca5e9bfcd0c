package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestPlaceA4Raster(t *testing.T) {
	got := Place(1588, 2246, A4())
	assert.InDelta(t, 195.0, got.Width, 0.5)
	assert.InDelta(t, 7.5, got.X, eps)
	assert.InDelta(t, got.Y-7.5, 297-7.5-(got.Y+got.Height), 1e-6)
}

func TestPlaceStaysInContentBox(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	spec := A4()
	for i := 0; i < 5000; i++ {
		w, h := 1+rng.Intn(6000), 1+rng.Intn(6000)
		p := Place(w, h, spec)
		contentW := spec.WidthMM - 2*spec.MarginMM
		contentH := spec.HeightMM - 2*spec.MarginMM
		if p.Width > contentW+eps || p.Height > contentH+eps {
			t.Fatalf("%dx%d: scaled %.4fx%.4f exceeds content box", w, h, p.Width, p.Height)
		}
		if p.X < spec.MarginMM-eps || p.X+p.Width > spec.WidthMM-spec.MarginMM+eps {
			t.Fatalf("%dx%d: x range [%.4f, %.4f] outside margins", w, h, p.X, p.X+p.Width)
		}
		if p.Y < spec.MarginMM-eps || p.Y+p.Height > spec.HeightMM-spec.MarginMM+eps {
			t.Fatalf("%dx%d: y range [%.4f, %.4f] outside margins", w, h, p.Y, p.Y+p.Height)
		}
		left, right := p.X-spec.MarginMM, spec.WidthMM-spec.MarginMM-(p.X+p.Width)
		top, bottom := p.Y-spec.MarginMM, spec.HeightMM-spec.MarginMM-(p.Y+p.Height)
		assert.InDelta(t, left, right, 1e-6)
		assert.InDelta(t, top, bottom, 1e-6)
		assert.InDelta(t, float64(w)/float64(h), p.Width/p.Height, 1e-6)
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "CV.pdf", FileName(""))
	assert.Equal(t, "CV.pdf", FileName("   "))
	assert.Equal(t, "Ana Horvat.pdf", FileName("Ana Horvat"))
	assert.Equal(t, "a b.pdf", FileName("a/ b"))
	assert.Equal(t, "CV.pdf", FileName(".."))
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: uint8(x % 256), B: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestWriterProducesSinglePage(t *testing.T) {
	out, err := NewWriter().Write(testPNG(t, 794, 1123), 794, 1123)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	n, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWriterRejectsEmptyRaster(t *testing.T) {
	_, err := NewWriter().Write(nil, 10, 10)
	assert.Error(t, err)
}

func TestWriterRejectsCorruptRaster(t *testing.T) {
	_, err := NewWriter().Write([]byte("not a png"), 10, 10)
	assert.Error(t, err)
}
