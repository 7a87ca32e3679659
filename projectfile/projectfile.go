/*
Package projectfile implements the sprite pack project file.

A project file lists one or more atlases. Each line is a key and a value
separated by a single space; blank lines and lines starting with # are
ignored. An "atlas" line starts a new atlas and every other key applies to the
most recent one:

	atlas <layout output file>
	image <texture output file>
	image_format <0 png, 1 tga, 2 bmp>
	exporter <atlas, txt or json>
	square <0 or 1>
	padding <pixels>
	padding_mode <0 bleed, 1 alpha, 2 debug>
	normalize <0 or 1>
	y_up <0 or 1>
	animation <name>
	frame_time <seconds>
	sprite <image path>
	frames <sprite index> ...

Sprites belong to the most recently named animation, or to the default group
before any animation line. Naming an animation that already exists switches
back to it. An animation plays its sprites in file order unless a frames line
gives another order. Unknown keys are ignored.
*/
package projectfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultAnimation is the name of the group holding sprites that are not
// part of an animation.
const DefaultAnimation = "<none>"

var errNoAtlas = errors.New("projectfile: key before first atlas")

// Animation is a named group of sprites. Frames holds sprite indices in
// playback order.
type Animation struct {
	Name      string
	FrameTime float32
	Frames    []int
}

// Sprite is an image path and the index of the animation it belongs to.
type Sprite struct {
	Path      string
	Animation int
}

// Atlas holds the settings and sprites of one atlas. Animations[0] is
// always the default group.
type Atlas struct {
	OutputFile  string
	Image       string
	ImageFormat int
	Exporter    string
	Square      bool
	Padding     int
	PaddingMode int
	Normalize   bool
	YUp         bool

	Animations []Animation
	Sprites    []Sprite
}

// NewAtlas returns an atlas with only the default animation group.
func NewAtlas(output string) *Atlas {
	return &Atlas{
		OutputFile: output,
		Animations: []Animation{{Name: DefaultAnimation}},
	}
}

// Project is the list of atlases in a project file.
type Project struct {
	Atlases []*Atlas
}

type lineError struct {
	line int
	err  error
}

func (e *lineError) Error() string {
	return fmt.Sprintf("projectfile: line %d: %v", e.line, e.err)
}

func (e *lineError) Unwrap() error {
	return e.err
}

func parseFrames(v string) ([]int, error) {
	fields := strings.Fields(v)
	frames := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		frames = append(frames, n)
	}
	return frames, nil
}

// members returns the indices of the sprites in animation i, in sprite
// order.
func (a *Atlas) members(i int) []int {
	var frames []int
	for j, s := range a.Sprites {
		if s.Animation == i {
			frames = append(frames, j)
		}
	}
	return frames
}

func equalFrames(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func parseBool(v string) (bool, error) {
	n, err := strconv.Atoi(v)
	return n != 0, err
}

func (a *Atlas) animation(name string) int {
	for i, anim := range a.Animations {
		if anim.Name == name {
			return i
		}
	}
	a.Animations = append(a.Animations, Animation{Name: name})
	return len(a.Animations) - 1
}

// Decode reads a project file from r.
func Decode(r io.Reader) (*Project, error) {
	p := new(Project)

	var (
		atlas   *Atlas
		current int
	)
	explicit := make(map[*Atlas]map[int]bool)

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || line[0] == '#' {
			continue
		}

		sep := strings.IndexByte(line, ' ')
		if sep < 0 {
			return nil, &lineError{n, fmt.Errorf("missing value in %q", line)}
		}
		key, value := line[:sep], line[sep+1:]

		if key == "atlas" {
			atlas = NewAtlas(value)
			current = 0
			p.Atlases = append(p.Atlases, atlas)
			continue
		}
		if atlas == nil {
			return nil, &lineError{n, errNoAtlas}
		}

		var err error
		switch key {
		case "image":
			atlas.Image = value
		case "image_format":
			atlas.ImageFormat, err = strconv.Atoi(value)
		case "exporter":
			atlas.Exporter = value
		case "square":
			atlas.Square, err = parseBool(value)
		case "padding":
			atlas.Padding, err = strconv.Atoi(value)
		case "padding_mode":
			atlas.PaddingMode, err = strconv.Atoi(value)
		case "normalize":
			atlas.Normalize, err = parseBool(value)
		case "y_up":
			atlas.YUp, err = parseBool(value)
		case "animation":
			current = atlas.animation(value)
		case "frame_time":
			var f float64
			f, err = strconv.ParseFloat(value, 32)
			atlas.Animations[current].FrameTime = float32(f)
		case "sprite":
			atlas.Sprites = append(atlas.Sprites, Sprite{Path: value, Animation: current})
		case "frames":
			atlas.Animations[current].Frames, err = parseFrames(value)
			if explicit[atlas] == nil {
				explicit[atlas] = make(map[int]bool)
			}
			explicit[atlas][current] = true
		}
		if err != nil {
			return nil, &lineError{n, err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for _, a := range p.Atlases {
		for i := range a.Animations {
			if !explicit[a][i] {
				a.Animations[i].Frames = a.members(i)
			}
		}
	}

	return p, nil
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Encode writes p to w.
func Encode(w io.Writer, p *Project) error {
	bw := bufio.NewWriter(w)

	for _, a := range p.Atlases {
		fmt.Fprintf(bw, "atlas %s\n", a.OutputFile)
		fmt.Fprintf(bw, "image %s\n", a.Image)
		fmt.Fprintf(bw, "image_format %d\n", a.ImageFormat)
		if a.Exporter != "" {
			fmt.Fprintf(bw, "exporter %s\n", a.Exporter)
		}
		fmt.Fprintf(bw, "square %d\n", btoi(a.Square))
		fmt.Fprintf(bw, "padding %d\n", a.Padding)
		fmt.Fprintf(bw, "padding_mode %d\n", a.PaddingMode)
		fmt.Fprintf(bw, "normalize %d\n", btoi(a.Normalize))
		fmt.Fprintf(bw, "y_up %d\n", btoi(a.YUp))

		// Before any animation line this applies to the default group.
		if len(a.Animations) > 0 && a.Animations[0].FrameTime != 0 {
			fmt.Fprintf(bw, "frame_time %g\n", a.Animations[0].FrameTime)
		}

		// Declare every group up front so empty ones survive a round trip.
		for _, anim := range a.Animations[min(1, len(a.Animations)):] {
			fmt.Fprintf(bw, "animation %s\n", anim.Name)
			fmt.Fprintf(bw, "frame_time %g\n", anim.FrameTime)
		}

		current := -1
		for _, s := range a.Sprites {
			if s.Animation != current {
				current = s.Animation
				name := DefaultAnimation
				if current > 0 && current < len(a.Animations) {
					name = a.Animations[current].Name
				}
				fmt.Fprintf(bw, "animation %s\n", name)
			}
			fmt.Fprintf(bw, "sprite %s\n", s.Path)
		}

		for i, anim := range a.Animations {
			if len(anim.Frames) == 0 || equalFrames(anim.Frames, a.members(i)) {
				continue
			}
			name := anim.Name
			if i == 0 {
				name = DefaultAnimation
			}
			fmt.Fprintf(bw, "animation %s\n", name)
			fmt.Fprint(bw, "frames")
			for _, f := range anim.Frames {
				fmt.Fprintf(bw, " %d", f)
			}
			fmt.Fprintln(bw)
		}
	}

	return bw.Flush()
}
