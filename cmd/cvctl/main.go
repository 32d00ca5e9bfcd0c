// Command cvctl runs the photo pipeline and the PDF export against local files.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"cvBuilder/internal/config"
	"cvBuilder/internal/cv"
	"cvBuilder/internal/export"
	"cvBuilder/internal/i18n"
	"cvBuilder/internal/pdf"
	"cvBuilder/internal/photo"
	"cvBuilder/internal/render"
)

const usage = `usage:
  cvctl photo   -in face.jpg -out photo.png [-cascade models/facefinder] [-lenient]
  cvctl preview -in cv.json  -out preview.html [-lang de]
  cvctl export  -in cv.json  [-out cv.pdf] [-lang de] [-chromium /usr/bin/chromium]`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	var err error
	switch os.Args[1] {
	case "photo":
		err = runPhoto(os.Args[2:], logger)
	case "preview":
		err = runPreview(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:], logger)
	case "-h", "--help", "help":
		fmt.Println(usage)
		return
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func runPhoto(args []string, logger *slog.Logger) error {
	fs := flag.NewFlagSet("photo", flag.ExitOnError)
	var (
		in      = fs.String("in", "", "输入图片路径（必填）")
		out     = fs.String("out", "photo.png", "输出路径")
		cascade = fs.String("cascade", "", "pigo 人脸模型路径（默认读 PHOTO_CASCADE_PATH）")
		lenient = fs.Bool("lenient", false, "跳过最小尺寸校验")
		clamd   = fs.String("clamd", "", "clamd 地址，例如 tcp://127.0.0.1:3310（默认读 CLAMD_ADDR）")
	)
	_ = fs.Parse(args)
	if strings.TrimSpace(*in) == "" {
		return errors.New("missing required flag: -in")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	cfg := config.DefaultPhoto()
	cfg.CascadePath = firstNonEmpty(*cascade, os.Getenv("PHOTO_CASCADE_PATH"), cfg.CascadePath)
	cfg.ClamdAddr = firstNonEmpty(*clamd, os.Getenv("CLAMD_ADDR"))
	cfg.Strict = !*lenient
	if err := config.ValidatePhoto(cfg); err != nil {
		return err
	}

	upload := photo.UploadedImage{
		Data:     data,
		MIMEType: http.DetectContentType(data),
		Size:     int64(len(data)),
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := photo.NewPipeline(cfg, logger).Process(ctx, upload)
	if err != nil {
		var rej *photo.RejectionError
		if errors.As(err, &rej) {
			return fmt.Errorf("rejected (%s): %w", rej.Reason, err)
		}
		return err
	}

	_, encoded, err := photo.ParseDataURI(result.DataURI)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, encoded, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("wrote %s (face_detected=%t fallback=%t side=%d)\n", *out, result.FaceDetected, result.Fallback, result.Side)
	return nil
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	var (
		in   = fs.String("in", "", "简历 JSON 路径（必填）")
		out  = fs.String("out", "preview.html", "输出路径")
		lang = fs.String("lang", "", "语言：de / en / es / hr")
	)
	_ = fs.Parse(args)

	record, err := readRecord(*in)
	if err != nil {
		return err
	}
	html, err := render.PreviewHTML(record, i18n.Lookup(i18n.Negotiate(*lang, os.Getenv("LANG"))), time.Now())
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("wrote %s\n", *out)
	return nil
}

func runExport(args []string, logger *slog.Logger) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var (
		in       = fs.String("in", "", "简历 JSON 路径（必填）")
		out      = fs.String("out", "", "输出路径（默认 <姓名>.pdf）")
		lang     = fs.String("lang", "", "语言：de / en / es / hr")
		chromium = fs.String("chromium", "", "Chromium 可执行文件（默认读 CHROMIUM_BIN，留空则自动下载）")
	)
	_ = fs.Parse(args)

	record, err := readRecord(*in)
	if err != nil {
		return err
	}

	cfg := config.DefaultExport()
	cfg.ChromiumBin = firstNonEmpty(*chromium, os.Getenv("CHROMIUM_BIN"))
	if err := config.ValidateExport(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	locale := i18n.Negotiate(*lang, os.Getenv("LANG"))
	artifact, err := export.NewServiceFromConfig(cfg, logger).Export(ctx, record, locale)
	if err != nil {
		return err
	}

	target := *out
	if target == "" {
		target = artifact.FileName
	}
	if err := os.WriteFile(target, artifact.PDF, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	pages, err := pdf.PageCount(artifact.PDF)
	if err != nil {
		return err
	}
	abs, _ := filepath.Abs(target)
	fmt.Printf("wrote %s (%d page, %d bytes, locale=%s)\n", abs, pages, len(artifact.PDF), locale)
	return nil
}

func readRecord(path string) (cv.Record, error) {
	if strings.TrimSpace(path) == "" {
		return cv.Record{}, errors.New("missing required flag: -in")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cv.Record{}, fmt.Errorf("read input: %w", err)
	}
	record := cv.Empty()
	if err := json.Unmarshal(raw, &record); err != nil {
		return cv.Record{}, fmt.Errorf("decode cv json: %w", err)
	}
	return record, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
