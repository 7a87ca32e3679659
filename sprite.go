package spritepack

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/bodgit/spritepack/imagefile"
	"github.com/bodgit/spritepack/surface"
)

// ErrEmptySprite is returned for an image with zero width or height.
var ErrEmptySprite = errors.New("spritepack: sprite has zero area")

// Sprite is one source image. It is not modified once created.
type Sprite struct {
	// Filename is where the image was loaded from, empty for sprites
	// created from an image in memory.
	Filename string
	Name     string
	Width    int
	Height   int

	surface surface.Surface
}

// NewSprite uploads m to r and returns it as a sprite called name.
func NewSprite(r surface.Renderer, name string, m image.Image) (*Sprite, error) {
	b := m.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySprite, name)
	}

	return &Sprite{
		Name:    name,
		Width:   b.Dx(),
		Height:  b.Dy(),
		surface: r.Upload(m),
	}, nil
}

// LoadSprite decodes filename and returns it as a sprite named after the
// file.
func LoadSprite(r surface.Renderer, filename string) (*Sprite, error) {
	m, err := imagefile.Load(filename)
	if err != nil {
		return nil, err
	}

	s, err := NewSprite(r, spriteName(filename), m)
	if err != nil {
		return nil, err
	}
	s.Filename = filename

	return s, nil
}

// Size returns the dimensions of s.
func (s *Sprite) Size() image.Point {
	return image.Pt(s.Width, s.Height)
}

// Surface returns the pixels of s.
func (s *Sprite) Surface() surface.Surface {
	return s.surface
}

// spriteName strips any directory from filename and cuts it at the first
// dot, unless the name starts with one.
func spriteName(filename string) string {
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		filename = filename[i+1:]
	}
	if i := strings.IndexByte(filename, '.'); i > 0 {
		filename = filename[:i]
	}
	return filename
}
