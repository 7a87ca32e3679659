package spritepack

import (
	"testing"

	"github.com/bodgit/spritepack/atlasfile"
	"github.com/bodgit/spritepack/packer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuadStripsPadding(t *testing.T) {
	q := quad(packer.Placement{X: 10, Y: 20}, 14, 8, 3)
	assert.Equal(t, atlasfile.Rect{X: 13, Y: 23, W: 8, H: 2}, q)
}

func TestFlipYTwiceRestores(t *testing.T) {
	r := atlasfile.Rect{X: 4, Y: 10, W: 8, H: 6}

	flipped := flipY(r, 64)
	assert.Equal(t, float64(64-10-6), flipped.Y)
	assert.Equal(t, r, flipY(flipped, 64))
}

func TestNormalize(t *testing.T) {
	r := normalize(atlasfile.Rect{X: 16, Y: 32, W: 32, H: 64}, 64, 128)
	assert.Equal(t, atlasfile.Rect{X: 0.25, Y: 0.25, W: 0.5, H: 0.5}, r)
}

func TestQuadsMatchPlacements(t *testing.T) {
	a := threeSprites(t, DefaultOptions())
	require.NoError(t, a.Render())

	assert.Equal(t, []atlasfile.Rect{
		{X: 0, Y: 0, W: 64, H: 64},
		{X: 0, Y: 64, W: 32, H: 32},
		{X: 32, Y: 64, W: 32, H: 32},
	}, a.Quads())
}

func TestQuadsYUpNormalized(t *testing.T) {
	o := DefaultOptions()
	o.YUp = true
	o.Normalize = true
	a := threeSprites(t, o)
	require.NoError(t, a.Render())

	// Flipped in pixels first, then divided by the texture size.
	assert.Equal(t, []atlasfile.Rect{
		{X: 0, Y: 0.5, W: 1, H: 0.5},
		{X: 0, Y: 0.25, W: 0.5, H: 0.25},
		{X: 0.5, Y: 0.25, W: 0.5, H: 0.25},
	}, a.Quads())
}

func TestQuadsWithPadding(t *testing.T) {
	o := DefaultOptions()
	o.Padding = 2
	a := newTestAtlas(t, o)
	addSprites(t, a, 0, solidSprite(t, "a", 4, 4, red))
	require.NoError(t, a.Render())

	w, h := a.Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 8, h)
	assert.Equal(t, []atlasfile.Rect{{X: 2, Y: 2, W: 4, H: 4}}, a.Quads())
}
