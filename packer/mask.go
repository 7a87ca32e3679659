package packer

// mask is a row-major occupancy bitmap with one bit per pixel.
type mask struct {
	w, h  int
	words int // per row
	bits  []uint64
}

func newMask(w, h int) *mask {
	words := (w + 63) >> 6
	return &mask{
		w:     w,
		h:     h,
		words: words,
		bits:  make([]uint64, words*h),
	}
}

func (m *mask) get(x, y int) bool {
	return m.bits[y*m.words+x>>6]&(1<<uint(x&63)) != 0
}

// rowRange returns true if any bit in [x0, x1) of row y is set.
func (m *mask) rowRange(y, x0, x1 int) bool {
	row := m.bits[y*m.words : (y+1)*m.words]
	for x := x0; x < x1; {
		i, off := x>>6, uint(x&63)
		n := 64 - int(off)
		if x1-x < n {
			n = x1 - x
		}
		bits := ^uint64(0) >> uint(64-n) << off
		if row[i]&bits != 0 {
			return true
		}
		x += n
	}
	return false
}

// clear reports whether the w by h rectangle at (x, y) is unoccupied. The
// four corners are sampled first; solid blocks only ever overlap a corner
// unless one rectangle straddles the other, which the full scan catches.
func (m *mask) clear(x, y, w, h int) bool {
	x1, y1 := x+w-1, y+h-1
	if m.get(x, y) || m.get(x1, y) || m.get(x, y1) || m.get(x1, y1) {
		return false
	}
	for r := y; r <= y1; r++ {
		if m.rowRange(r, x, x+w) {
			return false
		}
	}
	return true
}

func (m *mask) fill(x, y, w, h int) {
	for r := y; r < y+h; r++ {
		row := m.bits[r*m.words : (r+1)*m.words]
		for c := x; c < x+w; {
			i, off := c>>6, uint(c&63)
			n := 64 - int(off)
			if x+w-c < n {
				n = x + w - c
			}
			row[i] |= ^uint64(0) >> uint(64-n) << off
			c += n
		}
	}
}
