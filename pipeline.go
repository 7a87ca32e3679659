package spritepack

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/bodgit/spritepack/imagefile"
	"github.com/bodgit/spritepack/surface"
)

// DefaultWorkers is the number of images decoded at once when no worker
// count is given.
const DefaultWorkers = 4

type job struct {
	index    int
	filename string
}

func queueFiles(ctx context.Context, filenames []string) (<-chan job, <-chan error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for i, f := range filenames {
			select {
			case out <- job{i, f}:
			case <-ctx.Done():
				errc <- errors.New("load cancelled")
				return
			}
		}
	}()
	return out, errc
}

// decodeWorker decodes each queued file into its slot in images. Each index
// is only ever written by one worker.
func decodeWorker(ctx context.Context, in <-chan job, images []image.Image) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			m, err := imagefile.Load(j.filename)
			if err != nil {
				errc <- err
				return
			}
			images[j.index] = m

			if ctx.Err() != nil {
				return
			}
		}
	}()
	return errc
}

func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	var first error
	for err := range errc {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// LoadSprites decodes filenames using up to workers goroutines and returns
// the sprites in the same order. Uploading to r happens on the calling
// goroutine.
func LoadSprites(ctx context.Context, r surface.Renderer, filenames []string, workers int) ([]*Sprite, error) {
	if workers < 1 {
		workers = DefaultWorkers
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	images := make([]image.Image, len(filenames))

	jobs, errc := queueFiles(ctx, filenames)
	errcList := []<-chan error{errc}
	for i := 0; i < workers; i++ {
		errcList = append(errcList, decodeWorker(ctx, jobs, images))
	}

	if err := waitForPipeline(cancel, errcList...); err != nil {
		return nil, err
	}

	sprites := make([]*Sprite, len(filenames))
	for i, m := range images {
		s, err := NewSprite(r, spriteName(filenames[i]), m)
		if err != nil {
			return nil, err
		}
		s.Filename = filenames[i]
		sprites[i] = s
	}

	return sprites, nil
}
