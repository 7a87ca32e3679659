package spritepack

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"testing"

	"github.com/bodgit/spritepack/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSpritesKeepsOrder(t *testing.T) {
	dir := t.TempDir()

	var files []string
	for i := 1; i <= 12; i++ {
		files = append(files, writePNG(t, filepath.Join(dir, fmt.Sprintf("s%02d.png", i)), i, 13-i, red))
	}

	sprites, err := LoadSprites(context.Background(), surface.Software{}, files, 3)
	require.NoError(t, err)
	require.Len(t, sprites, len(files))

	for i, s := range sprites {
		assert.Equal(t, files[i], s.Filename)
		assert.Equal(t, fmt.Sprintf("s%02d", i+1), s.Name)
		assert.Equal(t, image.Pt(i+1, 12-i), s.Size())
	}
}

func TestLoadSpritesError(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writePNG(t, filepath.Join(dir, "a.png"), 2, 2, red),
		filepath.Join(dir, "missing.png"),
		writePNG(t, filepath.Join(dir, "b.png"), 2, 2, red),
	}

	_, err := LoadSprites(context.Background(), surface.Software{}, files, 0)
	assert.Error(t, err)
}

func TestLoadSpritesEmpty(t *testing.T) {
	sprites, err := LoadSprites(context.Background(), surface.Software{}, nil, 2)
	require.NoError(t, err)
	assert.Empty(t, sprites)
}
