// internal/domain/product/viewer_test.go
package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewpointAt(t *testing.T) {
	vp, err := ViewpointAt(0)
	require.NoError(t, err)
	assert.Equal(t, "Front View", vp)

	vp, err = ViewpointAt(4)
	require.NoError(t, err)
	assert.Equal(t, "Close Up Texture", vp)

	_, err = ViewpointAt(-1)
	assert.ErrorIs(t, err, ErrInvalidViewpoint)

	_, err = ViewpointAt(5)
	assert.ErrorIs(t, err, ErrInvalidViewpoint)
}

func TestZoomInsideRegion(t *testing.T) {
	g := Zoom(50, 150, 200, 200)
	assert.True(t, g.Active)
	assert.Equal(t, 25.0, g.X)
	assert.Equal(t, 75.0, g.Y)
}

func TestZoomEdges(t *testing.T) {
	g := Zoom(0, 200, 200, 200)
	assert.True(t, g.Active)
	assert.Equal(t, 0.0, g.X)
	assert.Equal(t, 100.0, g.Y)
}

func TestZoomOutsideRegionRests(t *testing.T) {
	for _, g := range []ZoomGeometry{
		Zoom(-1, 50, 200, 200),
		Zoom(50, -1, 200, 200),
		Zoom(201, 50, 200, 200),
		Zoom(50, 201, 200, 200),
		Zoom(50, 50, 0, 200),
	} {
		assert.False(t, g.Active)
		assert.Equal(t, 50.0, g.X)
		assert.Equal(t, 50.0, g.Y)
	}
}
