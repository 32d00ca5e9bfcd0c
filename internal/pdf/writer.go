package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
	pdfread "github.com/ledongthuc/pdf"
)

// ErrPageCount 表示生成的文档页数不是 1。
var ErrPageCount = errors.New("document must contain exactly one page")

// Writer 把一张 PNG 栅格图写入单页 PDF。
type Writer struct {
	Page PageSpec
}

func NewWriter() Writer {
	return Writer{Page: A4()}
}

// Write embeds the PNG at its placement on one portrait page and checks the result reads back as one page.
func (w Writer) Write(pngData []byte, imgW, imgH int) ([]byte, error) {
	if len(pngData) == 0 {
		return nil, errors.New("empty raster")
	}
	spec := w.Page
	if spec.WidthMM <= 0 || spec.HeightMM <= 0 {
		spec = A4()
	}
	at := Place(imgW, imgH, spec)

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: spec.WidthMM, Ht: spec.HeightMM},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCompression(true)
	doc.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("cv", opts, bytes.NewReader(pngData))
	doc.ImageOptions("cv", at.X, at.Y, at.Width, at.Height, false, opts, 0, "")
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("compose pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	out := buf.Bytes()

	n, err := PageCount(out)
	if err != nil {
		return nil, err
	}
	if n != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrPageCount, n)
	}
	return out, nil
}

// PageCount parses data and returns its number of pages.
func PageCount(data []byte) (int, error) {
	r, err := pdfread.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("read back pdf: %w", err)
	}
	return r.NumPage(), nil
}

// FileName returns "<fullName>.pdf", or "CV.pdf" for a blank name. Path separators and control characters are dropped.
func FileName(fullName string) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return -1
		}
		return r
	}, fullName)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		name = "CV"
	}
	return name + ".pdf"
}
