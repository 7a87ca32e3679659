package tga

import (
	"errors"
	"image"
	"image/color"
	"io"
)

var (
	errNotEnough   = errors.New("tga: not enough image data")
	errColorMapped = errors.New("tga: color-mapped images are not supported")
	errBadType     = errors.New("tga: unsupported image type")
	errBadDepth    = errors.New("tga: unsupported pixel depth")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	width, height int
	imageType     byte
	bytesPerPixel int
	topToBottom   bool

	image *image.NRGBA

	tmp [headerSize]byte
}

func (d *decoder) readHeader() error {
	if err := readFull(d.r, d.tmp[:headerSize]); err != nil {
		return err
	}

	idLength := int(d.tmp[0])
	if d.tmp[1] != 0 {
		return errColorMapped
	}
	d.imageType = d.tmp[2]
	if d.imageType != typeTrueColor && d.imageType != typeTrueColorRLE {
		return errBadType
	}
	d.width = int(d.tmp[12]) | int(d.tmp[13])<<8
	d.height = int(d.tmp[14]) | int(d.tmp[15])<<8
	switch d.tmp[16] {
	case 24, 32:
		d.bytesPerPixel = int(d.tmp[16]) >> 3
	default:
		return errBadDepth
	}
	d.topToBottom = d.tmp[17]&descTopLeft != 0

	// Skip the image ID field
	if idLength > 0 {
		if _, err := io.CopyN(io.Discard, d.r, int64(idLength)); err != nil {
			return io.ErrUnexpectedEOF
		}
	}

	return nil
}

func (d *decoder) pixel(b []byte) color.NRGBA {
	c := color.NRGBA{R: b[2], G: b[1], B: b[0], A: 0xff}
	if d.bytesPerPixel == 4 {
		c.A = b[3]
	}
	return c
}

func (d *decoder) set(i int, c color.NRGBA) {
	x, y := i%d.width, i/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.image.SetNRGBA(x, y, c)
}

func (d *decoder) readPixels() error {
	n := d.width * d.height
	px := make([]byte, d.bytesPerPixel)

	if d.imageType == typeTrueColor {
		for i := 0; i < n; i++ {
			if err := readFull(d.r, px); err != nil {
				return err
			}
			d.set(i, d.pixel(px))
		}
		return nil
	}

	var packet [1]byte
	for i := 0; i < n; {
		if err := readFull(d.r, packet[:]); err != nil {
			return err
		}
		count := int(packet[0]&0x7f) + 1

		if packet[0]&0x80 != 0 {
			// Run-length packet, one pixel repeated
			if err := readFull(d.r, px); err != nil {
				return err
			}
			c := d.pixel(px)
			for j := 0; j < count && i < n; j++ {
				d.set(i, c)
				i++
			}
			continue
		}

		// Raw packet
		for j := 0; j < count && i < n; j++ {
			if err := readFull(d.r, px); err != nil {
				return err
			}
			d.set(i, d.pixel(px))
			i++
		}
	}
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if configOnly {
		return nil
	}

	d.image = image.NewNRGBA(image.Rect(0, 0, d.width, d.height))

	if err := d.readPixels(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	return nil
}

// Decode reads a TGA image from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a TGA image without
// decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      d.width,
		Height:     d.height,
	}, nil
}
