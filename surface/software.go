package surface

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Software is a Renderer that draws into *image.RGBA surfaces on the CPU.
type Software struct{}

var _ Renderer = Software{}

// Create returns a transparent *image.RGBA surface.
func (Software) Create(w, h int) Surface {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// Upload converts m to RGBA.
func (Software) Upload(m image.Image) Surface {
	b := m.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Src)
	return dst
}

// Clear fills s with transparent black.
func (s Software) Clear(dst Surface) {
	s.Fill(dst, dst.Bounds(), color.Transparent)
}

// Fill replaces r with c.
func (Software) Fill(dst Surface, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// Blit copies sr of src to dr of dst with the Over operator. Mismatched
// sizes are stretched with nearest-neighbour sampling so single pixel rows
// and columns replicate exactly.
func (Software) Blit(src Surface, sr image.Rectangle, dst Surface, dr image.Rectangle) {
	if sr.Empty() || dr.Empty() {
		return
	}
	if sr.Size() == dr.Size() {
		draw.Copy(dst, dr.Min, src, sr, draw.Over, nil)
		return
	}
	draw.NearestNeighbor.Scale(dst, dr, src, sr, draw.Over, nil)
}

// ReadPixels returns a copy of the surface pixels.
func (Software) ReadPixels(s Surface) []byte {
	b := s.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, w*h*4)

	if m, ok := s.(*image.RGBA); ok {
		for y := 0; y < h; y++ {
			i := m.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out[y*w*4:(y+1)*w*4], m.Pix[i:i+w*4])
		}
		return out
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBAModel.Convert(s.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			i := (y*w + x) * 4
			out[i+0] = c.R
			out[i+1] = c.G
			out[i+2] = c.B
			out[i+3] = c.A
		}
	}
	return out
}
