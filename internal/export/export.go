// Package export runs the preview → print document → raster → PDF path for one record.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cvBuilder/internal/config"
	"cvBuilder/internal/cv"
	"cvBuilder/internal/i18n"
	"cvBuilder/internal/pdf"
	"cvBuilder/internal/render"
)

// ErrExportFailed 包装导出过程中的任何失败；失败时不会产出任何文件。
var ErrExportFailed = errors.New("export failed")

// Artifact is a finished single-page PDF.
type Artifact struct {
	FileName string
	PDF      []byte
	Pages    int
}

// Service 负责一次完整的 PDF 导出。
type Service struct {
	Rasterizer render.Rasterizer
	Writer     pdf.Writer
	Print      render.PrintSpec
	Logger     *slog.Logger
	Now        func() time.Time
}

func NewService(rasterizer render.Rasterizer, printSpec render.PrintSpec, page pdf.PageSpec, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Rasterizer: rasterizer,
		Writer:     pdf.Writer{Page: page},
		Print:      printSpec,
		Logger:     logger,
		Now:        time.Now,
	}
}

// NewServiceFromConfig wires a headless Chromium rasterizer and the configured page geometry.
func NewServiceFromConfig(cfg config.ExportConfig, logger *slog.Logger) *Service {
	printSpec := render.PrintSpec{
		WidthMM:     cfg.PageWidthMM,
		HeightMM:    cfg.PageHeightMM,
		PaddingMM:   cfg.PaddingMM,
		PixelWidth:  cfg.PixelWidth,
		PixelHeight: cfg.PixelHeight,
		Scale:       cfg.Scale,
	}
	page := pdf.PageSpec{WidthMM: cfg.PageWidthMM, HeightMM: cfg.PageHeightMM, MarginMM: cfg.MarginMM}
	rasterizer := render.NewRodRasterizer(cfg.ChromiumBin, cfg.Timeout, logger)
	return NewService(rasterizer, printSpec, page, logger)
}

// Export renders record in locale and returns the PDF. Every failure wraps ErrExportFailed.
func (s *Service) Export(ctx context.Context, record cv.Record, locale i18n.Locale) (Artifact, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	preview, err := render.PreviewHTML(record, i18n.Lookup(locale), now())
	if err != nil {
		return Artifact{}, fail("render preview", err)
	}
	printHTML, err := render.BuildPrintDocument(preview, s.Print)
	if err != nil {
		return Artifact{}, fail("build print document", err)
	}
	if s.Rasterizer == nil {
		return Artifact{}, fail("rasterize", errors.New("no rasterizer configured"))
	}
	raster, err := s.Rasterizer.Rasterize(ctx, printHTML, s.Print)
	if err != nil {
		return Artifact{}, fail("rasterize", err)
	}
	doc, err := s.Writer.Write(raster.PNG, raster.Width, raster.Height)
	if err != nil {
		return Artifact{}, fail("write pdf", err)
	}

	name := pdf.FileName(record.PersonalInfo.FullName)
	s.Logger.Info("cv exported",
		slog.String("file_name", name),
		slog.Int("raster_width", raster.Width),
		slog.Int("raster_height", raster.Height),
		slog.Int("bytes", len(doc)),
	)
	return Artifact{FileName: name, PDF: doc, Pages: 1}, nil
}

func fail(step string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrExportFailed, step, err)
}
