// internal/pkg/imaging/processor_test.go
package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, fill color.Color) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func decodeResult(t *testing.T, dataURL string) image.Image {
	t.Helper()
	mimeType, data, err := DecodeDataURL(dataURL)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mimeType)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestProcessSquareOutput(t *testing.T) {
	p := NewProcessor()

	tests := []struct {
		name string
		w, h int
	}{
		{"landscape", 800, 400},
		{"portrait", 300, 900},
		{"square small", 64, 64},
		{"square large", 2048, 2048},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataURL, err := p.Process(encodePNG(t, tt.w, tt.h, color.RGBA{R: 200, A: 255}))
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(dataURL, "data:image/jpeg;base64,"))

			img := decodeResult(t, dataURL)
			assert.Equal(t, DefaultSize, img.Bounds().Dx())
			assert.Equal(t, DefaultSize, img.Bounds().Dy())
		})
	}
}

func TestProcessCoverFillsCanvas(t *testing.T) {
	// A solid red landscape image must cover the full canvas height and
	// width after cover-fit: no white bars on any edge.
	p := NewProcessor()
	dataURL, err := p.Process(encodePNG(t, 1000, 500, color.RGBA{R: 255, A: 255}))
	require.NoError(t, err)

	img := decodeResult(t, dataURL)
	for _, pt := range []image.Point{
		{X: 5, Y: 5},
		{X: DefaultSize - 5, Y: 5},
		{X: 5, Y: DefaultSize - 5},
		{X: DefaultSize / 2, Y: DefaultSize / 2},
	} {
		r, g, b, _ := img.At(pt.X, pt.Y).RGBA()
		assert.Greater(t, r>>8, uint32(200), "corner %v should be red, not white fill", pt)
		assert.Less(t, g>>8, uint32(100))
		assert.Less(t, b>>8, uint32(100))
	}
}

func TestProcessRejectsGarbage(t *testing.T) {
	p := NewProcessor()
	_, err := p.Process(strings.NewReader("this is not an image"))
	assert.Error(t, err)
}

func TestDataURLRoundTrip(t *testing.T) {
	payload := []byte{0x01, 0x02, 0xFF}
	dataURL := EncodeDataURL("image/png", payload)

	mimeType, data, err := DecodeDataURL(dataURL)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, payload, data)
}

func TestDecodeDataURLErrors(t *testing.T) {
	_, _, err := DecodeDataURL("http://example.com/a.png")
	assert.Error(t, err)

	_, _, err = DecodeDataURL("data:image/png,rawpayload")
	assert.Error(t, err)

	_, _, err = DecodeDataURL("data:image/png;base64,!!!")
	assert.Error(t, err)
}
