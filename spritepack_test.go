package spritepack

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestSpritePack(t *testing.T) (*SpritePack, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)

	sp, err := New(filepath.Join(t.TempDir(), "build.db"), 2, zap.New(core))
	require.NoError(t, err)
	t.Cleanup(func() { sp.Close() })

	return sp, logs
}

func TestSpritePackExportSkipsUnchanged(t *testing.T) {
	file := writeTestProject(t)
	dir := filepath.Dir(file)
	sp, logs := newTestSpritePack(t)

	require.NoError(t, sp.Export(context.Background(), file, false))
	assert.Equal(t, 2, logs.FilterMessage("Exported atlas").Len())

	// Mark the output so a rewrite would be noticed.
	hero := filepath.Join(dir, "hero.atlas")
	require.NoError(t, os.WriteFile(hero, []byte("marker"), 0o644))

	require.NoError(t, sp.Export(context.Background(), file, false))
	assert.Equal(t, 2, logs.FilterMessage("Skipping unchanged atlas").Len())

	b, err := os.ReadFile(hero)
	require.NoError(t, err)
	assert.Equal(t, "marker", string(b))

	require.NoError(t, sp.Export(context.Background(), file, true))
	b, err = os.ReadFile(hero)
	require.NoError(t, err)
	assert.NotEqual(t, "marker", string(b))
}

func TestSpritePackExportChanged(t *testing.T) {
	file := writeTestProject(t)
	dir := filepath.Dir(file)
	sp, logs := newTestSpritePack(t)

	require.NoError(t, sp.Export(context.Background(), file, false))

	// A changed sprite and a missing output both force an export.
	writePNG(t, filepath.Join(dir, "art", "coin.png"), 4, 4, green)
	require.NoError(t, os.Remove(filepath.Join(dir, "hero.png")))

	require.NoError(t, sp.Export(context.Background(), file, false))
	assert.Equal(t, 4, logs.FilterMessage("Exported atlas").Len())
	assert.Zero(t, logs.FilterMessage("Skipping unchanged atlas").Len())
	assert.FileExists(t, filepath.Join(dir, "hero.png"))

	outputs, err := sp.db.Outputs(file)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "hero.atlas"), filepath.Join(dir, "items.json")}, outputs)
}

func TestSpritePackExportMissingProject(t *testing.T) {
	sp, _ := newTestSpritePack(t)
	assert.Error(t, sp.Export(context.Background(), filepath.Join(t.TempDir(), "none.spritepack"), false))
}
