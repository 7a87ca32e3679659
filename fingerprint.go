package spritepack

import (
	"crypto/sha1"
	"fmt"
	"hash"
	"io"
	"os"
)

func hashFile(h hash.Hash, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(h, f)
	return err
}

// Fingerprint returns a SHA-1 digest of everything that affects the exported
// files: the options, the sprite contents and the animations.
func (a *Atlas) Fingerprint() (string, error) {
	h := sha1.New()

	o := a.options
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00%d\x00%d\x00%d\x00%t\x00%t\x00%t\x00",
		o.OutputFile, o.OutputImage, o.ImageFormat, o.Format,
		o.Padding, o.PaddingMode, o.Square, o.Normalize, o.YUp)

	for _, s := range a.sprites {
		fmt.Fprintf(h, "s\x00%s\x00%d\x00%d\x00", s.Name, s.Width, s.Height)
		if s.Filename != "" {
			if err := hashFile(h, s.Filename); err != nil {
				return "", err
			}
			continue
		}
		if _, err := h.Write(a.renderer.ReadPixels(s.surface)); err != nil {
			return "", err
		}
	}

	for _, anim := range a.animations {
		fmt.Fprintf(h, "a\x00%s\x00%g\x00%v\x00", anim.Name, anim.FrameTime, anim.Frames)
	}

	return fmt.Sprintf("%.*X", sha1.Size<<1, h.Sum(nil)), nil
}
