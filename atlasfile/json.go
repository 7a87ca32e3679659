package atlasfile

import (
	"encoding/json"
	"io"
	"math"
	"sort"
)

type jsonSprite struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
}

type jsonLayout struct {
	Texture    string           `json:"texture"`
	Sprites    []jsonSprite     `json:"sprites"`
	Animations map[string][]int `json:"animations"`
}

// EncodeJSON writes l to w in the JSON format. Animation names are written
// in sorted order.
func EncodeJSON(w io.Writer, l *Layout) error {
	out := jsonLayout{
		Texture:    l.Image,
		Sprites:    make([]jsonSprite, 0, len(l.Sprites)),
		Animations: make(map[string][]int, len(l.Animations)),
	}
	for _, s := range l.Sprites {
		out.Sprites = append(out.Sprites, jsonSprite{s.Name, s.X, s.Y, s.W, s.H})
	}
	for _, a := range l.Animations {
		frames := a.Frames
		if frames == nil {
			frames = []int{}
		}
		out.Animations[a.Name] = frames
	}

	return json.NewEncoder(w).Encode(&out)
}

// DecodeJSON reads a layout in the JSON format from r. Animations are
// returned sorted by name and frame times are not preserved.
func DecodeJSON(r io.Reader) (*Layout, error) {
	var in jsonLayout
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, err
	}

	l := &Layout{Image: in.Texture}
	for _, s := range in.Sprites {
		l.Sprites = append(l.Sprites, Sprite{Name: s.Name, Rect: Rect{s.X, s.Y, s.W, s.H}})
		for _, v := range []float64{s.X, s.Y, s.W, s.H} {
			if v != math.Trunc(v) {
				l.Normalized = true
			}
		}
	}

	names := make([]string, 0, len(in.Animations))
	for name := range in.Animations {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		l.Animations = append(l.Animations, Animation{Name: name, Frames: in.Animations[name]})
	}

	return l, nil
}
