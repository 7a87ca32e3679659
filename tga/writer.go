package tga

import (
	"bufio"
	"errors"
	"image"
	"image/color"
	"io"
)

const maxDimension = 0xffff

type encoder struct {
	w *bufio.Writer
}

func (e *encoder) writeHeader(w, h int) error {
	var b [headerSize]byte
	b[2] = typeTrueColor
	b[12] = byte(w)
	b[13] = byte(w >> 8)
	b[14] = byte(h)
	b[15] = byte(h >> 8)
	b[16] = 32
	b[17] = descTopLeft | 8&descAlphaMask
	_, err := e.w.Write(b[:])
	return err
}

func (e *encoder) encode(m image.Image) error {
	b := m.Bounds()
	if err := e.writeHeader(b.Dx(), b.Dy()); err != nil {
		return err
	}

	var tmp [4]byte
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			tmp[0], tmp[1], tmp[2], tmp[3] = c.B, c.G, c.R, c.A
			if _, err := e.w.Write(tmp[:]); err != nil {
				return err
			}
		}
	}

	return e.w.Flush()
}

// Encode writes the Image m to w in TGA format.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Dx() > maxDimension || b.Dy() > maxDimension {
		return errors.New("tga: image is too large")
	}

	e := encoder{w: bufio.NewWriter(w)}

	return e.encode(m)
}
