// Package export turns rendered report markup into a paginated PDF.
// Two stages: a headless browser captures the markup as one tall raster
// image at a fixed reference width, then the image is sliced onto A4
// pages with uniform margins.
package export

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

// Rasterizer captures HTML markup as a single full-height PNG image.
type Rasterizer interface {
	Capture(ctx context.Context, html string) ([]byte, error)
}

// ChromeRasterizer renders markup in a headless Chromium page. The
// browser is launched once and pages are created per capture.
type ChromeRasterizer struct {
	browser *rod.Browser
	widthPx int
	log     zerolog.Logger
}

// NewChromeRasterizer launches a headless browser. bin overrides the
// browser binary; empty lets the launcher resolve one. widthPx is the
// fixed viewport width the report is laid out at.
func NewChromeRasterizer(bin string, widthPx int, log zerolog.Logger) (*ChromeRasterizer, error) {
	l := launcher.New().Headless(true)
	if bin != "" {
		l = l.Bin(bin)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	log.Info().Int("width_px", widthPx).Msg("Headless browser ready")

	return &ChromeRasterizer{
		browser: browser,
		widthPx: widthPx,
		log:     log.With().Str("component", "rasterizer").Logger(),
	}, nil
}

// Capture implements Rasterizer. It loads the markup into a fresh page at
// the reference width and takes a full-page screenshot. DeviceScaleFactor
// 2 doubles the pixel density for sharper PDF output.
func (r *ChromeRasterizer) Capture(ctx context.Context, html string) ([]byte, error) {
	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			r.log.Warn().Err(cerr).Msg("Page close failed")
		}
	}()

	page = page.Context(ctx)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             r.widthPx,
		Height:            600,
		DeviceScaleFactor: 2,
		Mobile:            false,
	}); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	png, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return png, nil
}

// Close shuts the browser down.
func (r *ChromeRasterizer) Close() error {
	return r.browser.Close()
}
