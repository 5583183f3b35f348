package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	"github.com/signintech/gopdf"
)

// A4 page geometry in millimeters.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
	MarginMM     = 20.0

	ContentWidthMM  = PageWidthMM - 2*MarginMM
	ContentHeightMM = PageHeightMM - 2*MarginMM
)

// PageOffsets returns the vertical position of the report image on each
// page, for a scaled image of the given height. The image is placed once
// per page, shifted up by one content-height per page, so each page shows
// the next slice through the page window.
//
// The loop keeps adding pages while the remaining height is >= 0, so an
// image height that is an exact multiple of the content height produces
// one extra near-empty trailing page. Clients rely on the page count, so
// this boundary behavior must not change.
func PageOffsets(imgHeightMM float64) []float64 {
	offsets := []float64{MarginMM}
	heightLeft := imgHeightMM - ContentHeightMM

	for page := 1; heightLeft >= 0; page++ {
		offsets = append(offsets, MarginMM-float64(page)*ContentHeightMM)
		heightLeft -= ContentHeightMM
	}
	return offsets
}

// BuildPDF lays a captured report image onto A4 pages and serializes the
// document. The image is scaled to the content width preserving aspect
// ratio; pages beyond the first repeat the image at negative offsets so
// the page window walks down the image.
func BuildPDF(png []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("snapshot has invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}

	imgHeightMM := float64(cfg.Height) * ContentWidthMM / float64(cfg.Width)

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		Unit:     gopdf.UnitMM,
		PageSize: gopdf.Rect{W: PageWidthMM, H: PageHeightMM},
	})

	holder, err := gopdf.ImageHolderByBytes(png)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	for _, offset := range PageOffsets(imgHeightMM) {
		pdf.AddPage()
		if err := pdf.ImageByHolder(holder, MarginMM, offset, &gopdf.Rect{
			W: ContentWidthMM,
			H: imgHeightMM,
		}); err != nil {
			return nil, fmt.Errorf("place snapshot: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize pdf: %w", err)
	}
	return buf.Bytes(), nil
}
