package spritepack

import (
	"path/filepath"
	"testing"

	"github.com/bodgit/spritepack/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	dir := t.TempDir()
	file := writePNG(t, filepath.Join(dir, "a.png"), 4, 4, red)

	build := func(padding int) *Atlas {
		o := DefaultOptions()
		o.Padding = padding
		a := newTestAtlas(t, o)
		s, err := LoadSprite(surface.Software{}, file)
		require.NoError(t, err)
		addSprites(t, a, 0, s, solidSprite(t, "mem", 2, 2, green))
		return a
	}

	first, err := build(0).Fingerprint()
	require.NoError(t, err)
	assert.Len(t, first, 40)

	again, err := build(0).Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, first, again)

	padded, err := build(1).Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, first, padded)

	a := build(0)
	a.AddAnimation("walk", 0.1)
	animated, err := a.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, first, animated)

	writePNG(t, file, 4, 4, blue)
	changed, err := build(0).Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}
