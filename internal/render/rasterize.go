package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Raster is a PNG snapshot of the print container.
type Raster struct {
	PNG    []byte
	Width  int
	Height int
}

// Rasterizer turns a print document into a page raster.
type Rasterizer interface {
	Rasterize(ctx context.Context, printHTML string, spec PrintSpec) (Raster, error)
}

// RodRasterizer 使用 go-rod 驱动无头 Chromium 截取 #print-container。
type RodRasterizer struct {
	// Bin overrides the Chromium binary; empty means look it up or download.
	Bin     string
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewRodRasterizer(bin string, timeout time.Duration, logger *slog.Logger) *RodRasterizer {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RodRasterizer{Bin: bin, Timeout: timeout, Logger: logger}
}

const waitImagesScript = `() => Promise.all(Array.from(document.images).map(img => {
  if (img.complete) return true;
  return new Promise(resolve => {
    img.addEventListener('load', () => resolve(true), { once: true });
    img.addEventListener('error', () => resolve(false), { once: true });
  });
}))`

const waitFontsScript = `() => {
  if (document && document.fonts && document.fonts.ready) {
    return Promise.race([
      document.fonts.ready.then(() => true),
      new Promise((resolve) => setTimeout(() => resolve(true), 3000))
    ]);
  }
  return true;
}`

// Rasterize renders printHTML and captures PixelWidth×PixelHeight CSS pixels at EffectiveScale.
// The browser is always torn down, whatever the outcome.
func (r *RodRasterizer) Rasterize(ctx context.Context, printHTML string, spec PrintSpec) (Raster, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	launch := launcher.New().
		Headless(true).
		NoSandbox(true).
		Context(ctx)
	defer launch.Cleanup()

	if r.Bin != "" {
		launch = launch.Bin(r.Bin)
	} else if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return Raster{}, fmt.Errorf("launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(browserURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return Raster{}, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return Raster{}, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	scale := spec.EffectiveScale()
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             spec.PixelWidth,
		Height:            spec.PixelHeight,
		DeviceScaleFactor: scale,
	}); err != nil {
		return Raster{}, fmt.Errorf("set viewport: %w", err)
	}

	if err := page.SetDocumentContent(printHTML); err != nil {
		return Raster{}, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return Raster{}, fmt.Errorf("wait load: %w", err)
	}
	if _, err := page.Element("#" + PrintContainer); err != nil {
		return Raster{}, fmt.Errorf("find print container: %w", err)
	}

	if _, err := page.Eval(waitImagesScript); err != nil {
		return Raster{}, fmt.Errorf("wait images: %w", err)
	}
	if _, err := page.Eval(waitFontsScript); err != nil {
		r.Logger.Warn("document.fonts.ready wait failed, continue", slog.Any("error", err))
	}

	data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      0,
			Y:      0,
			Width:  float64(spec.PixelWidth),
			Height: float64(spec.PixelHeight),
			Scale:  1,
		},
		CaptureBeyondViewport: true,
	})
	if err != nil {
		return Raster{}, fmt.Errorf("capture screenshot: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Raster{}, fmt.Errorf("decode screenshot: %w", err)
	}
	r.Logger.Info("print container rasterized",
		slog.Int("width", cfg.Width), slog.Int("height", cfg.Height), slog.Float64("scale", scale))
	return Raster{PNG: data, Width: cfg.Width, Height: cfg.Height}, nil
}
