package services

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/disintegration/imaging"

	"github.com/cardatelier/cardforge/cardforge/render"
)

const (
	rasterTimeout = 30 * time.Second

	// 300 DPI on a 96 DPI base.
	rasterScale = 3.125

	sheetGap     = 20
	sheetPadding = 20

	jpegQuality = 95

	cssPixelsPerInch = 96
)

// RasterFormat is an output encoding for a rendered card sheet.
type RasterFormat string

const (
	FormatPNG  RasterFormat = "png"
	FormatJPEG RasterFormat = "jpeg"
	FormatPDF  RasterFormat = "pdf"
)

// ParseRasterFormat validates a client-supplied format string.
func ParseRasterFormat(s string) (RasterFormat, error) {
	switch RasterFormat(s) {
	case FormatPNG, FormatJPEG, FormatPDF:
		return RasterFormat(s), nil
	default:
		return "", fmt.Errorf("unsupported format %q: must be png, jpeg, or pdf", s)
	}
}

func (f RasterFormat) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Rasterizer turns composed card sheets into image or PDF bytes using a
// headless browser.
type Rasterizer struct {
	logger *slog.Logger
}

func NewRasterizer() *Rasterizer {
	r := &Rasterizer{
		logger: slog.With(slog.String("service", "rasterizer")),
	}
	r.testChromedpAvailability()
	return r
}

func (r *Rasterizer) testChromedpAvailability() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	chromedpCtx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	err := chromedp.Run(chromedpCtx, chromedp.Navigate("data:text/html,<html><body>test</body></html>"))
	if err != nil {
		r.logger.Error("chromedp not available - card rendering will fail",
			slog.String("error", err.Error()))
	} else {
		r.logger.Info("chromedp is available and working")
	}
}

// Rasterize renders both sides of a composed sheet and encodes the result in
// the requested format. PNG and JPEG capture the whole sheet; PDF uses the
// front card's dimensions as the page size.
func (r *Rasterizer) Rasterize(ctx context.Context, sheet *render.Sheet, format RasterFormat) ([]byte, error) {
	start := time.Now()

	html := render.RenderDocument(sheet)
	r.logger.Info("Starting card rasterization",
		slog.String("type", "render"),
		slog.String("format", string(format)),
		slog.Int("html_length", len(html)))

	// Both cards side by side, plus the container gap and body padding.
	viewportWidth := int(math.Ceil(sheet.Front.Width+sheet.Back.Width)) + sheetGap + 2*sheetPadding
	viewportHeight := int(math.Ceil(math.Max(sheet.Front.Height, sheet.Back.Height))) + 2*sheetPadding

	chromedpCtx, cancel := chromedp.NewContext(ctx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancel()

	chromedpCtx, cancel = context.WithTimeout(chromedpCtx, rasterTimeout)
	defer cancel()

	actions := []chromedp.Action{
		chromedp.EmulateViewport(int64(viewportWidth), int64(viewportHeight),
			chromedp.EmulateScale(rasterScale)),
		chromedp.Navigate("data:text/html," + encodeDataURL(html)),
		chromedp.WaitVisible(".card-container", chromedp.ByQuery),
		chromedp.Sleep(200 * time.Millisecond),
	}

	var raw []byte
	if format == FormatPDF {
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			raw, _, err = page.PrintToPDF().
				WithPaperWidth(sheet.Front.Width / cssPixelsPerInch).
				WithPaperHeight(sheet.Front.Height / cssPixelsPerInch).
				WithPrintBackground(true).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}))
	} else {
		actions = append(actions, chromedp.CaptureScreenshot(&raw))
	}

	if err := chromedp.Run(chromedpCtx, actions...); err != nil {
		r.logger.Error("Rasterization failed",
			slog.String("type", "render"),
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("failed to rasterize card: %w", err)
	}

	out := raw
	if format == FormatJPEG {
		var err error
		out, err = pngToJPEG(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to encode jpeg: %w", err)
		}
	}

	r.logger.Info("Card rasterized",
		slog.String("type", "render"),
		slog.String("format", string(format)),
		slog.Int("output_size", len(out)),
		slog.Duration("elapsed", time.Since(start)))

	return out, nil
}

// Chrome screenshots are always PNG; JPEG output is re-encoded.
func pngToJPEG(data []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// The browser percent-decodes the data: URL body, so literal % sequences
// (presigned asset URLs carry %2F and friends) must be escaped first, then
// fragments and newlines, which would otherwise truncate or break the URL.
func encodeDataURL(html string) string {
	html = strings.ReplaceAll(html, "%", "%25")
	html = strings.ReplaceAll(html, "#", "%23")
	return strings.ReplaceAll(html, "\n", "")
}
