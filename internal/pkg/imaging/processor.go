// internal/pkg/imaging/processor.go
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"strings"

	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

const (
	// DefaultSize is the square output edge for processed avatars
	DefaultSize = 512

	// DefaultQuality is the JPEG encoding quality for processed avatars
	DefaultQuality = 90
)

// Processor normalizes uploaded avatars: square cover-fit crop onto a
// white canvas, re-encoded as JPEG, returned as a data URL.
type Processor struct {
	Size    int
	Quality int
}

// NewProcessor creates a processor with the default avatar geometry
func NewProcessor() *Processor {
	return &Processor{
		Size:    DefaultSize,
		Quality: DefaultQuality,
	}
}

// Process reads one image, fits it to the square canvas and returns the
// result as a JPEG data URL. Undecodable input returns an error and no
// partial output.
func (p *Processor) Process(r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, p.Size, p.Size))
	xdraw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)

	bounds := src.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return "", fmt.Errorf("image has no pixels")
	}

	// Cover fit: scale so the shorter edge fills the canvas, center the overflow
	scale := float64(p.Size) / float64(srcW)
	if s := float64(p.Size) / float64(srcH); s > scale {
		scale = s
	}
	dstW := int(float64(srcW) * scale)
	dstH := int(float64(srcH) * scale)
	offsetX := (p.Size - dstW) / 2
	offsetY := (p.Size - dstH) / 2

	dstRect := image.Rect(offsetX, offsetY, offsetX+dstW, offsetY+dstH)
	xdraw.CatmullRom.Scale(canvas, dstRect, src, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: p.Quality}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return EncodeDataURL("image/jpeg", buf.Bytes()), nil
}

// EncodeDataURL wraps raw bytes in a base64 data URL
func EncodeDataURL(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// DecodeDataURL splits a data URL into its MIME type and raw bytes
func DecodeDataURL(dataURL string) (string, []byte, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, fmt.Errorf("not a data URL")
	}
	rest := strings.TrimPrefix(dataURL, "data:")

	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, fmt.Errorf("data URL is not base64 encoded")
	}
	mimeType := rest[:sep]

	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URL payload: %w", err)
	}
	return mimeType, data, nil
}
