package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageOffsetsSinglePage(t *testing.T) {
	offsets := PageOffsets(100)
	require.Len(t, offsets, 1)
	assert.Equal(t, MarginMM, offsets[0])

	// Just below one content height still fits on a single page.
	offsets = PageOffsets(ContentHeightMM - 0.5)
	assert.Len(t, offsets, 1)
}

func TestPageOffsetsMultiPage(t *testing.T) {
	offsets := PageOffsets(2.5 * ContentHeightMM)
	require.Len(t, offsets, 3)
	assert.Equal(t, MarginMM, offsets[0])
	assert.Equal(t, MarginMM-ContentHeightMM, offsets[1])
	assert.Equal(t, MarginMM-2*ContentHeightMM, offsets[2])
}

func TestPageOffsetsExactMultiple(t *testing.T) {
	// An image of exactly k content heights paginates onto k+1 pages:
	// the loop runs while the remainder is >= 0, so a zero remainder
	// still emits a trailing page.
	offsets := PageOffsets(ContentHeightMM)
	assert.Len(t, offsets, 2)

	offsets = PageOffsets(3 * ContentHeightMM)
	assert.Len(t, offsets, 4)
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 220, G: 220, B: 220, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBuildPDFSinglePage(t *testing.T) {
	out, err := BuildPDF(encodePNG(t, 800, 400))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestBuildPDFTallImage(t *testing.T) {
	// 200x4000px maps to 170x3400mm of content, 14 pages worth.
	out, err := BuildPDF(encodePNG(t, 200, 4000))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Greater(t, len(out), 0)
}

func TestBuildPDFRejectsGarbage(t *testing.T) {
	_, err := BuildPDF([]byte("not a png"))
	assert.Error(t, err)
}
