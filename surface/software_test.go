package surface

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{0xff, 0x00, 0x00, 0xff}
	green = color.RGBA{0x00, 0xff, 0x00, 0xff}
)

func TestCreateIsTransparent(t *testing.T) {
	var r Software
	s := r.Create(3, 2)
	assert.Equal(t, 3, Width(s))
	assert.Equal(t, 2, Height(s))
	assert.Equal(t, make([]byte, 3*2*4), r.ReadPixels(s))
}

func TestFillReplacesPixels(t *testing.T) {
	var r Software
	s := r.Create(2, 2)
	r.Fill(s, s.Bounds(), red)
	r.Fill(s, image.Rect(1, 1, 2, 2), color.Transparent)

	assert.Equal(t, red, s.At(0, 0))
	assert.Equal(t, color.RGBA{}, s.At(1, 1))
}

func TestBlitStretchesSinglePixel(t *testing.T) {
	var r Software
	src := r.Create(2, 1)
	src.Set(0, 0, red)
	src.Set(1, 0, green)

	dst := r.Create(4, 4)
	r.Blit(src, image.Rect(1, 0, 2, 1), dst, image.Rect(1, 1, 4, 4))

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := color.RGBA{}
			if x >= 1 && y >= 1 {
				want = green
			}
			assert.Equal(t, want, dst.At(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestBlitBlendsOver(t *testing.T) {
	var r Software
	dst := r.Create(1, 1)
	r.Fill(dst, dst.Bounds(), red)

	src := r.Create(1, 1)
	r.Blit(src, src.Bounds(), dst, dst.Bounds())

	assert.Equal(t, red, dst.At(0, 0), "transparent source must not erase")
}

func TestUploadMovesOrigin(t *testing.T) {
	var r Software
	m := image.NewRGBA(image.Rect(10, 10, 12, 11))
	m.Set(11, 10, green)

	s := r.Upload(m)
	require.Equal(t, image.Rect(0, 0, 2, 1), s.Bounds())
	assert.Equal(t, green, s.At(1, 0))

	img := Image(r, s)
	assert.Equal(t, []byte{0, 0, 0, 0, 0x00, 0xff, 0x00, 0xff}, img.Pix)
}
