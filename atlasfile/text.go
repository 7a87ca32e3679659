package atlasfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MaxFrames is the largest frame count accepted on an animation line.
const MaxFrames = 1 << 16

// ErrBadName is returned by EncodeText when a sprite or animation name can't
// be written as a single field.
var ErrBadName = errors.New("atlasfile: name is empty or contains whitespace")

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, " \t\r\n\v\f")
}

// EncodeText writes l to w in the text format. Nothing is written if any
// name would not survive being split on whitespace.
func EncodeText(w io.Writer, l *Layout) error {
	for _, s := range l.Sprites {
		if !validName(s.Name) {
			return fmt.Errorf("%w: sprite %q", ErrBadName, s.Name)
		}
	}
	for _, a := range l.Animations {
		if !validName(a.Name) {
			return fmt.Errorf("%w: animation %q", ErrBadName, a.Name)
		}
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "i %s %d\n", l.Image, len(l.Sprites))

	for _, s := range l.Sprites {
		if l.Normalized {
			fmt.Fprintf(bw, "s %s %f %f %f %f\n", s.Name, s.X, s.Y, s.W, s.H)
			continue
		}
		fmt.Fprintf(bw, "s %s %d %d %d %d\n", s.Name, int(s.X), int(s.Y), int(s.W), int(s.H))
	}

	for _, a := range l.Animations {
		fmt.Fprintf(bw, "a %s %d\n", a.Name, len(a.Frames))
	}

	for _, a := range l.Animations {
		for i, frame := range a.Frames {
			fmt.Fprintf(bw, "f %s %d %d\n", a.Name, i, frame)
		}
	}

	return bw.Flush()
}

type textError struct {
	line int
	msg  string
}

func (e *textError) Error() string {
	return fmt.Sprintf("atlasfile: line %d: %s", e.line, e.msg)
}

// DecodeText reads a layout in the text format from r.
func DecodeText(r io.Reader) (*Layout, error) {
	l := new(Layout)
	index := make(map[string]int)
	seenImage := false

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "i":
			if len(fields) != 3 {
				return nil, &textError{n, "malformed image line"}
			}
			l.Image = fields[1]
			seenImage = true
		case "s":
			if len(fields) != 6 {
				return nil, &textError{n, "malformed sprite line"}
			}
			s := Sprite{Name: fields[1]}
			for i, p := range []*float64{&s.X, &s.Y, &s.W, &s.H} {
				v, err := strconv.ParseFloat(fields[i+2], 64)
				if err != nil {
					return nil, &textError{n, err.Error()}
				}
				*p = v
				if strings.ContainsRune(fields[i+2], '.') {
					l.Normalized = true
				}
			}
			l.Sprites = append(l.Sprites, s)
		case "a":
			if len(fields) != 3 {
				return nil, &textError{n, "malformed animation line"}
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, &textError{n, err.Error()}
			}
			if count < 0 || count > MaxFrames {
				return nil, &textError{n, fmt.Sprintf("frame count %d out of range", count)}
			}
			index[fields[1]] = len(l.Animations)
			l.Animations = append(l.Animations, Animation{
				Name:   fields[1],
				Frames: make([]int, count),
			})
		case "f":
			if len(fields) != 4 {
				return nil, &textError{n, "malformed frame line"}
			}
			a, ok := index[fields[1]]
			if !ok {
				return nil, &textError{n, fmt.Sprintf("frame for unknown animation %q", fields[1])}
			}
			pos, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, &textError{n, err.Error()}
			}
			sprite, err := strconv.Atoi(fields[3])
			if err != nil {
				return nil, &textError{n, err.Error()}
			}
			frames := l.Animations[a].Frames
			if pos < 0 || pos >= len(frames) {
				return nil, &textError{n, fmt.Sprintf("frame position %d out of range", pos)}
			}
			frames[pos] = sprite
		default:
			return nil, &textError{n, fmt.Sprintf("unknown record %q", fields[0])}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !seenImage {
		return nil, &textError{1, "missing image line"}
	}

	return l, nil
}
