// Package imagefile reads sprite images and writes atlas textures in the
// formats supported by the packer.
package imagefile

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/spritepack/tga"
	"github.com/disintegration/imaging"
)

// Format is an atlas texture encoding.
type Format int

// Texture formats, numbered as stored in project files.
const (
	PNG Format = iota
	TGA
	BMP
)

var extensions = [...]string{"png", "tga", "bmp"}

// ErrUnknownFormat is returned for an unrecognised format name or number.
var ErrUnknownFormat = errors.New("imagefile: unknown image format")

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	if !f.Valid() {
		return ""
	}
	return extensions[f]
}

func (f Format) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return strings.ToUpper(extensions[f])
}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	return f >= PNG && f <= BMP
}

// ParseFormat accepts a format name or file extension, with or without a
// leading dot, in any case.
func ParseFormat(s string) (Format, error) {
	s = strings.TrimPrefix(strings.ToLower(s), ".")
	for i, ext := range extensions {
		if s == ext {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath guesses the format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Encode writes m to w in format f.
func Encode(w io.Writer, m image.Image, f Format) error {
	switch f {
	case PNG:
		return imaging.Encode(w, m, imaging.PNG)
	case BMP:
		return imaging.Encode(w, m, imaging.BMP)
	case TGA:
		return tga.Encode(w, m)
	}
	return ErrUnknownFormat
}

// Decode reads an image from r. TGA has no signature so the caller says
// whether to expect it.
func Decode(r io.Reader, isTGA bool) (image.Image, error) {
	if isTGA {
		return tga.Decode(r)
	}
	return imaging.Decode(r)
}

// Load decodes the image file at path. Anything imaging understands is
// accepted, plus TGA by extension.
func Load(path string) (image.Image, error) {
	if !strings.EqualFold(filepath.Ext(path), ".tga") {
		m, err := imaging.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return m, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tga.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
