// internal/domain/product/viewer.go
package product

import "errors"

// Viewpoints are the fixed camera angles offered in the detail view,
// in display order
var Viewpoints = []string{
	"Front View",
	"Side Profile",
	"Back View",
	"Top Down",
	"Close Up Texture",
}

// ErrInvalidViewpoint is returned for an out-of-range viewpoint index
var ErrInvalidViewpoint = errors.New("invalid viewpoint index")

// ViewpointAt returns the viewpoint name for a selector index
func ViewpointAt(index int) (string, error) {
	if index < 0 || index >= len(Viewpoints) {
		return "", ErrInvalidViewpoint
	}
	return Viewpoints[index], nil
}

// ZoomGeometry describes the magnifier state for a cursor position:
// background origin percentages and whether magnification is active
type ZoomGeometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Active bool    `json:"active"`
}

// Zoom maps a cursor offset within an image region of the given
// dimensions to magnifier geometry. Positions outside the region give
// the resting state: centered and unmagnified. Inside, each axis is
// clamped to 0-100 percent.
func Zoom(x, y, width, height float64) ZoomGeometry {
	if width <= 0 || height <= 0 || x < 0 || y < 0 || x > width || y > height {
		return ZoomGeometry{X: 50, Y: 50, Active: false}
	}
	return ZoomGeometry{
		X:      clampPercent(x / width * 100),
		Y:      clampPercent(y / height * 100),
		Active: true,
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
