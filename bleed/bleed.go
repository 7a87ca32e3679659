/*
Package bleed wraps sprites in a padding border before they are packed.

With a non-zero padding every sprite is copied into the centre of a larger
transparent surface. In Bleed mode the outermost row and column of the sprite
are replicated into the border, stretching the four corner pixels to p by p
blocks and the four edges to p pixels thick, so that bilinear filtering and
mipmapping never sample transparent pixels at a sprite edge. Alpha mode leaves
the border transparent and Debug mode paints it an opaque flat colour.
*/
package bleed

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/bodgit/spritepack/surface"
)

// Mode selects how the padding border is filled.
type Mode int

// Padding modes, numbered as stored in project files.
const (
	Bleed Mode = iota
	Alpha
	Debug
)

var modeNames = [...]string{"bleed", "alpha", "debug"}

// DebugColor is the border colour used by Debug mode.
var DebugColor = color.RGBA{0xff, 0xff, 0x00, 0xff}

// ErrUnknownMode is returned when parsing an unrecognised mode name.
var ErrUnknownMode = errors.New("bleed: unknown padding mode")

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m >= Bleed && m <= Debug
}

// ParseMode converts a case-insensitive mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Candidate is a padded sprite ready to be placed by the packer.
type Candidate struct {
	Surface surface.Surface
	Width   int
	Height  int

	// Index is the position of the source sprite in its atlas and is used
	// to break ties when sorting.
	Index int
}

// Size returns the padded dimensions of c.
func (c Candidate) Size() image.Point {
	return image.Pt(c.Width, c.Height)
}

// border returns the eight source and destination rectangles making up the
// padding around a w by h sprite; corners first, then the top, right, bottom
// and left edges.
func border(w, h, p int) (src, dst [8]image.Rectangle) {
	src = [8]image.Rectangle{
		image.Rect(0, 0, 1, 1),
		image.Rect(w-1, 0, w, 1),
		image.Rect(w-1, h-1, w, h),
		image.Rect(0, h-1, 1, h),
		image.Rect(0, 0, w, 1),
		image.Rect(w-1, 0, w, h),
		image.Rect(0, h-1, w, h),
		image.Rect(0, 0, 1, h),
	}
	dst = [8]image.Rectangle{
		image.Rect(0, 0, p, p),
		image.Rect(w+p, 0, w+2*p, p),
		image.Rect(w+p, h+p, w+2*p, h+2*p),
		image.Rect(0, h+p, p, h+2*p),
		image.Rect(p, 0, w+p, p),
		image.Rect(w+p, p, w+2*p, h+p),
		image.Rect(p, h+p, w+p, h+2*p),
		image.Rect(0, p, p, h+p),
	}
	return
}

// Generate returns a new candidate holding sprite surrounded by padding
// pixels filled according to mode. The sprite must have a non-zero area and
// a negative padding is treated as zero.
func Generate(r surface.Renderer, sprite surface.Surface, index, padding int, mode Mode) Candidate {
	if padding < 0 {
		padding = 0
	}
	w, h := surface.Width(sprite), surface.Height(sprite)
	p := padding

	c := Candidate{
		Width:  w + 2*p,
		Height: h + 2*p,
		Index:  index,
	}
	c.Surface = r.Create(c.Width, c.Height)
	r.Clear(c.Surface)

	if p > 0 {
		src, dst := border(w, h, p)
		for i := range dst {
			switch mode {
			case Alpha:
				r.Fill(c.Surface, dst[i], color.Transparent)
			case Debug:
				r.Fill(c.Surface, dst[i], DebugColor)
			default:
				r.Blit(sprite, src[i].Add(sprite.Bounds().Min), c.Surface, dst[i])
			}
		}
	}

	r.Blit(sprite, sprite.Bounds(), c.Surface, image.Rect(p, p, p+w, p+h))

	return c
}
