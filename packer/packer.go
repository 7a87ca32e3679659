/*
Package packer places rectangles into a single power-of-two container.

The container size is first estimated from the total area and the largest
rectangle, then rectangles are placed largest first by scanning an occupancy
bitmap row by row, left to right. When a rectangle does not fit the attempt is
thrown away and packing restarts with a taller size hint. Rectangles are never
rotated.
*/
package packer

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"go.uber.org/zap"
)

const (
	// MaxSprites is the largest number of rectangles accepted by Pack.
	MaxSprites = 4096

	// MaxAttempts bounds the number of times Pack restarts with a larger
	// container.
	MaxAttempts = 512
)

var (
	// ErrTooManySprites is returned when more than MaxSprites rectangles
	// are passed to Pack.
	ErrTooManySprites = errors.New("packer: too many sprites to pack")

	// ErrEmptyRect is returned for a rectangle with zero width or height.
	ErrEmptyRect = errors.New("packer: rectangle has zero area")

	// ErrNoFit is returned if MaxAttempts containers were tried without
	// fitting every rectangle.
	ErrNoFit = errors.New("packer: rectangles do not fit")
)

// Config controls the container shape.
type Config struct {
	// Square forces the container width to equal its height.
	Square bool

	Logger *zap.Logger
}

// Placement is the top-left offset assigned to one rectangle.
type Placement struct {
	Index int
	X, Y  int
}

// Rect returns the rectangle occupied by a placement of size s.
func (p Placement) Rect(s image.Point) image.Rectangle {
	return image.Rectangle{Min: image.Pt(p.X, p.Y), Max: image.Pt(p.X+s.X, p.Y+s.Y)}
}

// Result holds the container size and one placement per input rectangle,
// in input order.
type Result struct {
	Width, Height int
	Placements    []Placement

	// Attempts is the number of containers tried, including the one
	// that succeeded.
	Attempts int
}

// NextPow2 returns the smallest power of two greater than or equal to v.
// Values below two return one.
func NextPow2(v int) int {
	n := 1
	for n < v {
		n <<= 1
	}
	return n
}

func ceilSqrt(v int) int {
	a := int(math.Sqrt(float64(v)))
	for a*a < v {
		a++
	}
	for a > 0 && (a-1)*(a-1) >= v {
		a--
	}
	return a
}

// EstimateSize returns the container size for the given rectangles. hint is
// a minimum height and retry the number of failed attempts so far; the two
// halving corrections are only tried on the first attempt.
func EstimateSize(sizes []image.Point, hint, retry int, square bool) (int, int) {
	var area, maxW, maxH int
	for _, s := range sizes {
		area += s.X * s.Y
		if s.X > maxW {
			maxW = s.X
		}
		if s.Y > maxH {
			maxH = s.Y
		}
	}

	a := ceilSqrt(area)
	w := NextPow2(max(a, maxW))
	h := NextPow2(max(a, hint, maxH))

	// The square side follows the height estimate alone, a width-dominant
	// set gets a wider container through retries.
	if square {
		return h, h
	}

	if retry == 0 && w == h && area <= (w/2)*h {
		w /= 2
	}
	if retry == 0 && w != h && area <= w*(h/2) {
		h /= 2
	}

	return w, h
}

// byArea orders rectangle indices largest first, keeping input order for
// equal areas.
func byArea(sizes []image.Point) []int {
	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := sizes[order[i]], sizes[order[j]]
		return a.X*a.Y > b.X*b.Y
	})
	return order
}

func place(sizes []image.Point, order []int, w, h int) ([]Placement, bool) {
	m := newMask(w, h)
	placements := make([]Placement, len(sizes))

	for _, i := range order {
		s := sizes[i]
		x, y, ok := m.find(s.X, s.Y)
		if !ok {
			return nil, false
		}
		m.fill(x, y, s.X, s.Y)
		placements[i] = Placement{Index: i, X: x, Y: y}
	}

	return placements, true
}

func (m *mask) find(w, h int) (int, int, bool) {
	for y := 0; y+h <= m.h; y++ {
		for x := 0; x <= m.w-w; x++ {
			if m.clear(x, y, w, h) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// Pack places every rectangle in sizes into one container. No partial
// result is returned on error.
func Pack(sizes []image.Point, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(sizes) > MaxSprites {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySprites, len(sizes), MaxSprites)
	}
	if len(sizes) == 0 {
		return &Result{}, nil
	}
	for i, s := range sizes {
		if s.X <= 0 || s.Y <= 0 {
			return nil, fmt.Errorf("%w: #%d is %dx%d", ErrEmptyRect, i, s.X, s.Y)
		}
	}

	order := byArea(sizes)
	hint := 0

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		w, h := EstimateSize(sizes, hint, attempt, cfg.Square)
		if placements, ok := place(sizes, order, w, h); ok {
			logger.Debug("packed",
				zap.Int("sprites", len(sizes)),
				zap.Int("width", w),
				zap.Int("height", h),
				zap.Int("attempts", attempt+1))
			return &Result{
				Width:      w,
				Height:     h,
				Placements: placements,
				Attempts:   attempt + 1,
			}, nil
		}
		logger.Debug("container too small, retrying",
			zap.Int("width", w),
			zap.Int("height", h))
		hint = h + 1
	}

	return nil, ErrNoFit
}
