package spritepack

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/bodgit/spritepack/atlasfile"
	"github.com/bodgit/spritepack/imagefile"
	"github.com/bodgit/spritepack/surface"
	"go.uber.org/zap"
)

// ErrNothingToExport is returned when exporting an atlas with no sprites.
var ErrNothingToExport = errors.New("spritepack: nothing to export")

// Layout renders the atlas if needed and returns its layout. The default
// animation group is left out.
func (a *Atlas) Layout() (*atlasfile.Layout, error) {
	if len(a.sprites) == 0 {
		return nil, ErrNothingToExport
	}
	if err := a.Render(); err != nil {
		return nil, err
	}
	if a.texture == nil {
		return nil, ErrNothingToExport
	}

	l := &atlasfile.Layout{
		Image:      a.options.OutputImage,
		Normalized: a.options.Normalize,
		Sprites:    make([]atlasfile.Sprite, len(a.sprites)),
	}
	for i, q := range a.Quads() {
		l.Sprites[i] = atlasfile.Sprite{Name: a.sprites[i].Name, Rect: q}
	}
	for _, anim := range a.animations[1:] {
		l.Animations = append(l.Animations, atlasfile.Animation{
			Name:      anim.Name,
			FrameTime: anim.FrameTime,
			Frames:    append([]int(nil), anim.Frames...),
		})
	}

	return l, nil
}

type output struct {
	path string
	data []byte
	temp string
}

func removeTemps(outputs []output) {
	for _, o := range outputs {
		if o.temp != "" {
			_ = os.Remove(o.temp)
		}
	}
}

// writeOutputs writes each output to a temporary file next to its path and
// only renames them into place once every write has succeeded.
func writeOutputs(outputs ...output) error {
	for i := range outputs {
		o := &outputs[i]
		f, err := os.CreateTemp(filepath.Dir(o.path), "."+filepath.Base(o.path)+".*")
		if err != nil {
			removeTemps(outputs[:i])
			return err
		}
		o.temp = f.Name()

		_, err = f.Write(o.data)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err == nil {
			err = os.Chmod(o.temp, 0o644)
		}
		if err != nil {
			removeTemps(outputs[:i+1])
			return err
		}
	}

	for i, o := range outputs {
		if err := os.Rename(o.temp, o.path); err != nil {
			removeTemps(outputs[i:])
			return err
		}
	}

	return nil
}

// Export writes the layout file and the texture image. Both are encoded and
// written to temporary files before either is renamed into place so a
// failure leaves nothing behind.
func (a *Atlas) Export() error {
	l, err := a.Layout()
	if err != nil {
		return err
	}

	lb := new(bytes.Buffer)
	if err := atlasfile.Encode(lb, l, a.options.Format); err != nil {
		return err
	}

	ib := new(bytes.Buffer)
	if err := imagefile.Encode(ib, surface.Image(a.renderer, a.texture), a.options.ImageFormat); err != nil {
		return err
	}

	if err := writeOutputs(
		output{path: a.options.OutputFile, data: lb.Bytes()},
		output{path: a.options.OutputImage, data: ib.Bytes()},
	); err != nil {
		return err
	}

	a.logger.Info("Exported atlas",
		zap.String("layout", a.options.OutputFile),
		zap.String("image", a.options.OutputImage),
		zap.Int("width", a.width),
		zap.Int("height", a.height))

	return nil
}
