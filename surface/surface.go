/*
Package surface defines the drawing capability used to build atlas textures.

A Renderer creates blank RGBA render targets, copies rectangles between them
with alpha blending and reads the resulting pixels back. The packing core only
ever talks to a Renderer so a GPU backed implementation can replace the
software one without touching the packer.
*/
package surface

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Surface is a drawable RGBA render target whose bounds start at (0, 0).
type Surface interface {
	draw.Image
}

// Renderer is the drawing capability consumed by the bleed generator and
// the atlas compositor.
type Renderer interface {
	// Create returns a transparent surface of the given size.
	Create(w, h int) Surface
	// Upload copies m into a new surface with its origin moved to (0, 0).
	Upload(m image.Image) Surface
	// Clear resets every pixel of s to transparent black.
	Clear(s Surface)
	// Fill replaces the pixels of r in s with c, without blending.
	Fill(s Surface, r image.Rectangle, c color.Color)
	// Blit copies sr of src onto dr of dst using alpha blending,
	// stretching when the rectangles differ in size.
	Blit(src Surface, sr image.Rectangle, dst Surface, dr image.Rectangle)
	// ReadPixels returns the tightly packed, row-major RGBA bytes of s.
	ReadPixels(s Surface) []byte
}

// Width returns the width of s in pixels.
func Width(s Surface) int {
	return s.Bounds().Dx()
}

// Height returns the height of s in pixels.
func Height(s Surface) int {
	return s.Bounds().Dy()
}

// Image wraps the pixels read back from s in an *image.RGBA suitable for
// passing to an image encoder.
func Image(r Renderer, s Surface) *image.RGBA {
	b := s.Bounds()
	return &image.RGBA{
		Pix:    r.ReadPixels(s),
		Stride: b.Dx() * 4,
		Rect:   image.Rect(0, 0, b.Dx(), b.Dy()),
	}
}
