package spritepack

import (
	"github.com/bodgit/spritepack/atlasfile"
	"github.com/bodgit/spritepack/packer"
)

// quad returns the rectangle of the sprite inside a padded placement of
// size w by h.
func quad(p packer.Placement, w, h, padding int) atlasfile.Rect {
	return atlasfile.Rect{
		X: float64(p.X + padding),
		Y: float64(p.Y + padding),
		W: float64(w - 2*padding),
		H: float64(h - 2*padding),
	}
}

// flipY moves the origin of r between the top and bottom of a texture of
// the given height.
func flipY(r atlasfile.Rect, height float64) atlasfile.Rect {
	r.Y = height - r.Y - r.H
	return r
}

func normalize(r atlasfile.Rect, width, height float64) atlasfile.Rect {
	r.X /= width
	r.W /= width
	r.Y /= height
	r.H /= height
	return r
}

// Quads returns the reported rectangle of every sprite in sprite order, or
// nil if the atlas has changed since it was last rendered.
func (a *Atlas) Quads() []atlasfile.Rect {
	if a.dirty || len(a.placements) != len(a.sprites) {
		return nil
	}

	w, h := float64(a.width), float64(a.height)
	quads := make([]atlasfile.Rect, len(a.sprites))
	for i, c := range a.candidates {
		q := quad(a.placements[i], c.Width, c.Height, a.options.Padding)
		if a.options.YUp {
			q = flipY(q, h)
		}
		if a.options.Normalize {
			q = normalize(q, w, h)
		}
		quads[i] = q
	}

	return quads
}
