package export

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Pipeline composes the rasterizer and the PDF builder into the full
// report export: markup in, paginated PDF bytes out. Failures at either
// stage surface as error results; no partial document ever escapes.
type Pipeline struct {
	rasterizer Rasterizer
	log        zerolog.Logger
}

// NewPipeline creates an export Pipeline.
func NewPipeline(rasterizer Rasterizer, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		rasterizer: rasterizer,
		log:        log.With().Str("component", "export_pipeline").Logger(),
	}
}

// Export captures the markup and builds the paginated PDF.
func (p *Pipeline) Export(ctx context.Context, html string) ([]byte, error) {
	png, err := p.rasterizer.Capture(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("capture report: %w", err)
	}

	pdf, err := BuildPDF(png)
	if err != nil {
		return nil, err
	}

	p.log.Debug().
		Int("snapshot_bytes", len(png)).
		Int("pdf_bytes", len(pdf)).
		Msg("Report exported")
	return pdf, nil
}
