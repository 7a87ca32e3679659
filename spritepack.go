/*
Package spritepack packs sprite images into texture atlases.

Each atlas pads its sprites, packs them into a single power-of-two texture
and exports the texture together with a layout file listing the rectangle of
every sprite and the frames of every animation.
*/
package spritepack

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bodgit/spritepack/surface"
	"go.uber.org/zap"
)

// SpritePack exports projects, skipping atlases that have not changed since
// they were last exported.
type SpritePack struct {
	db       *BuildDB
	renderer surface.Renderer
	logger   *zap.Logger
	workers  int
}

// New opens the build database at dbPath. A nil logger discards all output.
func New(dbPath string, workers int, logger *zap.Logger) (*SpritePack, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := NewBuildDB(dbPath)
	if err != nil {
		return nil, err
	}

	return &SpritePack{
		db:       db,
		renderer: surface.Software{},
		logger:   logger,
		workers:  workers,
	}, nil
}

// Close closes the build database.
func (sp *SpritePack) Close() error {
	return sp.db.Close()
}

// Renderer returns the renderer used for every atlas.
func (sp *SpritePack) Renderer() surface.Renderer {
	return sp.renderer
}

// Load reads the project file at path.
func (sp *SpritePack) Load(ctx context.Context, path string) (*Project, error) {
	return LoadProject(ctx, sp.renderer, path, sp.workers, sp.logger)
}

func exists(file string) bool {
	_, err := os.Stat(file)
	return err == nil
}

// Export exports every atlas of the project at path whose fingerprint has
// changed or whose output files are missing. With force set every atlas is
// exported.
func (sp *SpritePack) Export(ctx context.Context, path string, force bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	p, err := sp.Load(ctx, abs)
	if err != nil {
		return err
	}

	var errs []error
	for _, a := range p.Atlases {
		o := a.Options()

		sha, err := a.Fingerprint()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.OutputFile, err))
			continue
		}

		if !force && exists(o.OutputFile) && exists(o.OutputImage) {
			old, err := sp.db.Lookup(o.OutputFile)
			if err != nil {
				return err
			}
			if old == sha {
				sp.logger.Warn("Skipping unchanged atlas", zap.String("output", o.OutputFile), zap.String("sha1", sha))
				continue
			}
		}

		if err := a.Export(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.OutputFile, err))
			continue
		}

		if err := sp.db.Record(abs, o.OutputFile, sha); err != nil {
			return err
		}
	}

	return errors.Join(errs...)
}
