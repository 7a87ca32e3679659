package spritepack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bodgit/spritepack/atlasfile"
	"github.com/bodgit/spritepack/bleed"
	"github.com/bodgit/spritepack/imagefile"
	"github.com/bodgit/spritepack/projectfile"
	"github.com/bodgit/spritepack/surface"
	"go.uber.org/zap"
)

// DefaultProject is the file name given to a new project.
const DefaultProject = "untitled.spritepack"

// Project is a set of atlases saved together in one project file. Paths in
// the file are relative to it.
type Project struct {
	Filename string
	Atlases  []*Atlas

	renderer surface.Renderer
	logger   *zap.Logger
}

// NewProject returns a project holding a single empty atlas.
func NewProject(r surface.Renderer, filename string, options Options, logger *zap.Logger) (*Project, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	a, err := NewAtlas(r, options, logger)
	if err != nil {
		return nil, err
	}

	return &Project{
		Filename: filename,
		Atlases:  []*Atlas{a},
		renderer: r,
		logger:   logger,
	}, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// relative returns path relative to the absolute directory dir, or path
// unchanged if that is not possible.
func relative(dir, path string) string {
	if path == "" {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return path
	}
	return rel
}

func atlasOptions(dir string, pa *projectfile.Atlas) (Options, error) {
	o := DefaultOptions()
	o.OutputFile = resolve(dir, pa.OutputFile)
	if pa.Image != "" {
		o.OutputImage = resolve(dir, pa.Image)
	}
	o.ImageFormat = imagefile.Format(pa.ImageFormat)
	o.Padding = pa.Padding
	o.PaddingMode = bleed.Mode(pa.PaddingMode)
	o.Square = pa.Square
	o.Normalize = pa.Normalize
	o.YUp = pa.YUp

	if pa.Exporter != "" {
		f, err := atlasfile.ParseFormat(pa.Exporter)
		if err != nil {
			return o, err
		}
		o.Format = f
	}

	return o, o.Validate()
}

// LoadProject reads the project file at filename and decodes every sprite
// it lists, using up to workers goroutines.
func LoadProject(ctx context.Context, r surface.Renderer, filename string, workers int, logger *zap.Logger) (*Project, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pf, err := projectfile.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if len(pf.Atlases) == 0 {
		return nil, fmt.Errorf("%s: no atlases", filename)
	}

	dir := filepath.Dir(filename)

	var files []string
	for _, pa := range pf.Atlases {
		for _, s := range pa.Sprites {
			files = append(files, resolve(dir, s.Path))
		}
	}

	sprites, err := LoadSprites(ctx, r, files, workers)
	if err != nil {
		return nil, err
	}

	p := &Project{
		Filename: filename,
		renderer: r,
		logger:   logger,
	}

	for _, pa := range pf.Atlases {
		o, err := atlasOptions(dir, pa)
		if err != nil {
			return nil, fmt.Errorf("%s: atlas %s: %w", filename, pa.OutputFile, err)
		}

		a, err := NewAtlas(r, o, logger)
		if err != nil {
			return nil, err
		}

		a.animations[0].FrameTime = pa.Animations[0].FrameTime
		for _, anim := range pa.Animations[1:] {
			a.animations = append(a.animations, Animation{Name: anim.Name, FrameTime: anim.FrameTime})
		}

		for _, s := range pa.Sprites {
			if _, err := a.AddSprite(sprites[0], s.Animation); err != nil {
				return nil, err
			}
			sprites = sprites[1:]
		}

		for i, anim := range pa.Animations {
			if err := a.SetFrames(i, anim.Frames); err != nil {
				return nil, fmt.Errorf("%s: animation %s: %w", filename, anim.Name, err)
			}
		}

		p.Atlases = append(p.Atlases, a)
	}

	logger.Debug("Loaded project",
		zap.String("project", filename),
		zap.Int("atlases", len(p.Atlases)),
		zap.Int("sprites", len(files)))

	return p, nil
}

// AddAtlas appends a new empty atlas.
func (p *Project) AddAtlas(options Options) (*Atlas, error) {
	a, err := NewAtlas(p.renderer, options, p.logger)
	if err != nil {
		return nil, err
	}
	p.Atlases = append(p.Atlases, a)
	return a, nil
}

func (a *Atlas) projectAtlas(dir string) (*projectfile.Atlas, error) {
	o := a.options
	pa := &projectfile.Atlas{
		OutputFile:  relative(dir, o.OutputFile),
		Image:       relative(dir, o.OutputImage),
		ImageFormat: int(o.ImageFormat),
		Exporter:    o.Format.String(),
		Square:      o.Square,
		Padding:     o.Padding,
		PaddingMode: int(o.PaddingMode),
		Normalize:   o.Normalize,
		YUp:         o.YUp,
	}

	owner := make([]int, len(a.sprites))
	for i, anim := range a.animations {
		pa.Animations = append(pa.Animations, projectfile.Animation{
			Name:      anim.Name,
			FrameTime: anim.FrameTime,
			Frames:    append([]int(nil), anim.Frames...),
		})
		for _, f := range anim.Frames {
			owner[f] = i
		}
	}

	for i, s := range a.sprites {
		if s.Filename == "" {
			return nil, fmt.Errorf("sprite %s has no file", s.Name)
		}
		pa.Sprites = append(pa.Sprites, projectfile.Sprite{Path: relative(dir, s.Filename), Animation: owner[i]})
	}

	return pa, nil
}

// Save writes the project file.
func (p *Project) Save() error {
	dir, err := filepath.Abs(filepath.Dir(p.Filename))
	if err != nil {
		return err
	}

	pf := new(projectfile.Project)
	for _, a := range p.Atlases {
		pa, err := a.projectAtlas(dir)
		if err != nil {
			return err
		}
		pf.Atlases = append(pf.Atlases, pa)
	}

	b := new(bytes.Buffer)
	if err := projectfile.Encode(b, pf); err != nil {
		return err
	}

	return os.WriteFile(p.Filename, b.Bytes(), 0o644)
}

// ExportAll exports every atlas, carrying on past failures. All errors are
// returned joined together.
func (p *Project) ExportAll() error {
	var errs []error
	for _, a := range p.Atlases {
		if err := a.Export(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a.options.OutputFile, err))
		}
	}
	return errors.Join(errs...)
}
