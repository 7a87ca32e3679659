/*
Package atlasfile implements the layout files written next to a packed atlas
texture.

The text format is line oriented with space separated fields:

	i <image> <sprite count>
	s <name> <x> <y> <w> <h>
	a <animation> <frame count>
	f <animation> <frame position> <sprite index>

There is one s line per sprite in sprite order, then one a line per animation
followed by all of the f lines. Coordinates are integers unless the layout is
normalized, in which case they are written as decimals between 0 and 1.
Names are not quoted so sprite and animation names must be non-empty and free
of whitespace; EncodeText returns ErrBadName otherwise. Use the JSON format
for names that don't fit.
Frame counts above MaxFrames are rejected when decoding.

The JSON format is a single object:

	{"texture": "<image>", "sprites": [{"name", "x", "y", "w", "h"}, ...],
	 "animations": {"<animation>": [<sprite index>, ...], ...}}
*/
package atlasfile

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Format selects the layout file encoding.
type Format int

// Supported formats.
const (
	Text Format = iota
	JSON
)

// ErrUnknownFormat is returned for an unrecognised exporter name.
var ErrUnknownFormat = errors.New("atlasfile: unknown format")

// ParseFormat maps an exporter name to a Format. "atlas" and "txt" both
// select the text format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "atlas", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

func (f Format) String() string {
	switch f {
	case Text:
		return "atlas"
	case JSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the conventional file extension, without the dot.
func (f Format) Ext() string {
	return f.String()
}

// Rect is a sprite rectangle in pixels or normalized texture coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Sprite is a named rectangle within the atlas texture.
type Sprite struct {
	Name string
	Rect
}

// Animation is a named sequence of sprite indices.
type Animation struct {
	Name      string
	FrameTime float32
	Frames    []int
}

// Layout is everything written to a layout file.
type Layout struct {
	Image      string
	Normalized bool
	Sprites    []Sprite
	Animations []Animation
}

// Encode writes l to w in format f.
func Encode(w io.Writer, l *Layout, f Format) error {
	switch f {
	case Text:
		return EncodeText(w, l)
	case JSON:
		return EncodeJSON(w, l)
	}
	return ErrUnknownFormat
}

// Decode reads a layout in format f from r.
func Decode(r io.Reader, f Format) (*Layout, error) {
	switch f {
	case Text:
		return DecodeText(r)
	case JSON:
		return DecodeJSON(r)
	}
	return nil, ErrUnknownFormat
}
