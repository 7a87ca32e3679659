package spritepack

import (
	"errors"
	"fmt"
	"image"

	"github.com/bodgit/spritepack/atlasfile"
	"github.com/bodgit/spritepack/bleed"
	"github.com/bodgit/spritepack/imagefile"
	"github.com/bodgit/spritepack/packer"
	"github.com/bodgit/spritepack/projectfile"
	"github.com/bodgit/spritepack/surface"
	"go.uber.org/zap"
)

var (
	// ErrDefaultAnimation is returned when trying to remove the default
	// animation group.
	ErrDefaultAnimation = errors.New("spritepack: cannot remove default animation")

	// ErrNoSuchSprite is returned for a sprite index out of range.
	ErrNoSuchSprite = errors.New("spritepack: no such sprite")

	// ErrNoSuchAnimation is returned for an animation index out of range.
	ErrNoSuchAnimation = errors.New("spritepack: no such animation")

	// ErrBadFrames is returned when a new frame order is not a
	// permutation of the current one.
	ErrBadFrames = errors.New("spritepack: frames do not match animation")

	// ErrNegativePadding is returned for a padding below zero.
	ErrNegativePadding = errors.New("spritepack: padding must not be negative")
)

// Options are the per-atlas settings. Changing any of them requires the
// atlas to be rendered again.
type Options struct {
	OutputFile  string
	OutputImage string
	ImageFormat imagefile.Format
	Format      atlasfile.Format

	Padding     int
	PaddingMode bleed.Mode

	// Square makes the texture width equal to its height.
	Square bool

	// Normalize reports sprite rectangles in texture coordinates between
	// 0 and 1 rather than pixels.
	Normalize bool

	// YUp puts the origin at the bottom left of the texture.
	YUp bool
}

// DefaultOptions returns the settings of a new atlas.
func DefaultOptions() Options {
	return Options{
		OutputFile:  "untitled.atlas",
		OutputImage: "untitled.png",
		ImageFormat: imagefile.PNG,
		Format:      atlasfile.Text,
		PaddingMode: bleed.Bleed,
	}
}

// Validate checks o for values that cannot be packed or exported.
func (o *Options) Validate() error {
	if o.Padding < 0 {
		return ErrNegativePadding
	}
	if !o.PaddingMode.Valid() {
		return fmt.Errorf("%w: %d", bleed.ErrUnknownMode, int(o.PaddingMode))
	}
	if !o.ImageFormat.Valid() {
		return fmt.Errorf("%w: %d", imagefile.ErrUnknownFormat, int(o.ImageFormat))
	}
	switch o.Format {
	case atlasfile.Text, atlasfile.JSON:
	default:
		return fmt.Errorf("%w: %d", atlasfile.ErrUnknownFormat, int(o.Format))
	}
	return nil
}

// Atlas is a list of sprites and animations packed into one texture.
type Atlas struct {
	renderer surface.Renderer
	logger   *zap.Logger
	options  Options

	sprites    []*Sprite
	animations []Animation

	candidates []bleed.Candidate
	placements []packer.Placement
	texture    surface.Surface
	width      int
	height     int
	dirty      bool
}

// NewAtlas returns an empty atlas holding only the default animation group.
// A nil logger discards all output.
func NewAtlas(r surface.Renderer, options Options, logger *zap.Logger) (*Atlas, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Atlas{
		renderer:   r,
		logger:     logger,
		options:    options,
		animations: []Animation{{Name: projectfile.DefaultAnimation}},
		dirty:      true,
	}, nil
}

// Options returns the current settings.
func (a *Atlas) Options() Options {
	return a.options
}

// SetOptions replaces the settings. The atlas is packed again on the next
// render.
func (a *Atlas) SetOptions(o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	a.options = o
	a.dirty = true
	return nil
}

// Sprites returns the sprites in insertion order.
func (a *Atlas) Sprites() []*Sprite {
	return a.sprites
}

// Animations returns the animation groups; index 0 is the default group.
func (a *Atlas) Animations() []Animation {
	return a.animations
}

// Animation returns animation i.
func (a *Atlas) Animation(i int) (*Animation, error) {
	if i < 0 || i >= len(a.animations) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchAnimation, i)
	}
	return &a.animations[i], nil
}

// AddSprite appends s to the sprite list and to the frames of animation
// anim, returning the new sprite index.
func (a *Atlas) AddSprite(s *Sprite, anim int) (int, error) {
	if anim < 0 || anim >= len(a.animations) {
		return 0, fmt.Errorf("%w: %d", ErrNoSuchAnimation, anim)
	}

	i := len(a.sprites)
	a.sprites = append(a.sprites, s)
	a.animations[anim].Frames = append(a.animations[anim].Frames, i)
	a.dirty = true

	return i, nil
}

// RemoveSprite removes sprite i. Frame indices in every animation are
// renumbered to match.
func (a *Atlas) RemoveSprite(i int) error {
	if i < 0 || i >= len(a.sprites) {
		return fmt.Errorf("%w: %d", ErrNoSuchSprite, i)
	}

	a.sprites = append(a.sprites[:i], a.sprites[i+1:]...)
	for j := range a.animations {
		a.animations[j].removeFrame(i)
	}
	a.dirty = true

	return nil
}

// AddAnimation appends a new empty animation group and returns its index.
// A frame time that is not positive is copied from the last group.
func (a *Atlas) AddAnimation(name string, frameTime float32) int {
	if frameTime <= 0 {
		frameTime = a.animations[len(a.animations)-1].FrameTime
	}
	a.animations = append(a.animations, Animation{Name: name, FrameTime: frameTime})
	return len(a.animations) - 1
}

// RemoveAnimation removes animation i along with all of its sprites.
func (a *Atlas) RemoveAnimation(i int) error {
	if i == 0 {
		return ErrDefaultAnimation
	}
	if i < 0 || i >= len(a.animations) {
		return fmt.Errorf("%w: %d", ErrNoSuchAnimation, i)
	}

	for len(a.animations[i].Frames) > 0 {
		if err := a.RemoveSprite(a.animations[i].Frames[0]); err != nil {
			return err
		}
	}
	a.animations = append(a.animations[:i], a.animations[i+1:]...)
	a.dirty = true

	return nil
}

// MoveFrame moves the frame at position from in animation anim to position
// to, shifting the frames in between.
func (a *Atlas) MoveFrame(anim, from, to int) error {
	g, err := a.Animation(anim)
	if err != nil {
		return err
	}
	if from < 0 || from >= len(g.Frames) || to < 0 || to >= len(g.Frames) {
		return fmt.Errorf("%w: move %d to %d", ErrBadFrames, from, to)
	}

	f := g.Frames[from]
	switch {
	case from < to:
		copy(g.Frames[from:], g.Frames[from+1:to+1])
	case from > to:
		copy(g.Frames[to+1:], g.Frames[to:from])
	}
	g.Frames[to] = f

	return nil
}

// SetFrames replaces the frame order of animation anim. frames must hold
// the same sprite indices as the animation already does.
func (a *Atlas) SetFrames(anim int, frames []int) error {
	g, err := a.Animation(anim)
	if err != nil {
		return err
	}
	if len(frames) != len(g.Frames) {
		return ErrBadFrames
	}

	seen := make(map[int]int, len(frames))
	for _, f := range g.Frames {
		seen[f]++
	}
	for _, f := range frames {
		if seen[f] == 0 {
			return fmt.Errorf("%w: sprite %d", ErrBadFrames, f)
		}
		seen[f]--
	}
	g.Frames = append(g.Frames[:0], frames...)

	return nil
}

// Render regenerates the padded candidates, packs them and composites the
// texture. Rendering a clean atlas does nothing.
func (a *Atlas) Render() error {
	if !a.dirty {
		return nil
	}

	a.candidates = a.candidates[:0]
	sizes := make([]image.Point, 0, len(a.sprites))
	for i, s := range a.sprites {
		c := bleed.Generate(a.renderer, s.surface, i, a.options.Padding, a.options.PaddingMode)
		a.candidates = append(a.candidates, c)
		sizes = append(sizes, c.Size())
	}

	result, err := packer.Pack(sizes, &packer.Config{
		Square: a.options.Square,
		Logger: a.logger,
	})
	if err != nil {
		return err
	}
	a.placements = result.Placements

	if len(a.sprites) == 0 {
		a.dirty = false
		return nil
	}

	if a.texture == nil || a.width != result.Width || a.height != result.Height {
		a.texture = a.renderer.Create(result.Width, result.Height)
		a.width, a.height = result.Width, result.Height
	}
	a.renderer.Clear(a.texture)

	for i, c := range a.candidates {
		p := a.placements[i]
		a.renderer.Blit(c.Surface, image.Rect(0, 0, c.Width, c.Height), a.texture, p.Rect(c.Size()))
	}

	a.logger.Debug("Rendered atlas",
		zap.String("output", a.options.OutputFile),
		zap.Int("sprites", len(a.sprites)),
		zap.Int("width", a.width),
		zap.Int("height", a.height),
		zap.Int("attempts", result.Attempts))
	a.dirty = false

	return nil
}

// Size returns the texture dimensions from the last render, zero before
// the first one.
func (a *Atlas) Size() (int, int) {
	return a.width, a.height
}

// Texture returns the composited texture, nil before the first render of a
// non-empty atlas.
func (a *Atlas) Texture() surface.Surface {
	return a.texture
}

// Placements returns the padded placement of every sprite from the last
// render, in sprite order.
func (a *Atlas) Placements() []packer.Placement {
	return a.placements
}
