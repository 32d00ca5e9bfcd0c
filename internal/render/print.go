package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrMissingPreviewRoot 表示文档中没有 #cv-preview 节点。
var ErrMissingPreviewRoot = errors.New("preview root #cv-preview not found")

const (
	PreviewRootID   = "cv-preview"
	PrintContainer  = "print-container"
	ProfileImageSel = "img.profile-image"
)

// PrintSpec 描述导出时的物理页面与像素网格。
type PrintSpec struct {
	WidthMM     float64
	HeightMM    float64
	PaddingMM   float64
	PixelWidth  int
	PixelHeight int
	// Scale is the device pixel ratio; values below 2 are raised to 2.
	Scale float64
}

// DefaultPrintSpec is A4 at 96dpi with 10mm padding.
func DefaultPrintSpec() PrintSpec {
	return PrintSpec{WidthMM: 210, HeightMM: 297, PaddingMM: 10, PixelWidth: 794, PixelHeight: 1123, Scale: 2}
}

func (s PrintSpec) EffectiveScale() float64 {
	if s.Scale < 2 {
		return 2
	}
	return s.Scale
}

// ApplyPrintStyles returns a styled copy of the preview root; root itself is not modified.
// Profile photos get a fixed 125px circle with a 2px #2563eb border, the root gets 16px/1.5
// typography and every descendant loses its own font-size and line-height.
func ApplyPrintStyles(root *goquery.Selection) *goquery.Selection {
	out := root.Clone()

	setStyle(out.Find(ProfileImageSel),
		"width", "125px",
		"height", "125px",
		"border-radius", "50%",
		"border-width", "2px",
		"border-style", "solid",
		"border-color", "#2563eb",
		"object-fit", "cover",
		"aspect-ratio", "1/1",
		"background", "#fff",
		"box-sizing", "border-box",
		"display", "block",
	)

	setStyle(out,
		"width", "100%",
		"height", "100%",
		"margin", "0",
		"padding", "0",
		"background-color", "#ffffff",
		"font-size", "16px",
		"line-height", "1.5",
	)
	clearStyle(out.Find("*"), "font-size", "line-height")
	return out
}

// BuildPrintDocument clones #cv-preview into a page-sized #print-container and applies print styles.
// The document head, and with it the preview stylesheet, is kept.
func BuildPrintDocument(previewHTML string, spec PrintSpec) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(previewHTML))
	if err != nil {
		return "", fmt.Errorf("parse preview: %w", err)
	}
	root := doc.Find("#" + PreviewRootID).First()
	if root.Length() == 0 {
		return "", ErrMissingPreviewRoot
	}
	styled := ApplyPrintStyles(root)

	body := doc.Find("body")
	body.Empty()
	body.SetAttr("style", "margin: 0; padding: 0; background: #ffffff")
	body.AppendHtml(`<div id="` + PrintContainer + `"></div>`)

	container := body.Find("#" + PrintContainer)
	setStyle(container,
		"position", "absolute",
		"left", "0",
		"top", "0",
		"width", mm(spec.WidthMM),
		"height", mm(spec.HeightMM),
		"background-color", "#ffffff",
		"padding", mm(spec.PaddingMM),
		"box-sizing", "border-box",
		"font-family", "system-ui, -apple-system, sans-serif",
		"font-size", "12px",
		"line-height", "1.4",
		"overflow", "hidden",
	)
	container.AppendSelection(styled)

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("serialize print document: %w", err)
	}
	return out, nil
}

func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "mm"
}
