package spritepack

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/spritepack/atlasfile"
	"github.com/bodgit/spritepack/bleed"
	"github.com/bodgit/spritepack/imagefile"
	"github.com/bodgit/spritepack/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProject = `# two atlases
atlas hero.atlas
image hero.png
padding 2
padding_mode 2
sprite art/idle.png
animation walk
frame_time 0.1
sprite art/walk0.png
sprite art/walk1.png
frames 2 1

atlas items.json
image items.tga
image_format 1
exporter json
square 1
y_up 1
sprite art/coin.png
`

func writeTestProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "art"), 0o755))

	writePNG(t, filepath.Join(dir, "art", "idle.png"), 8, 16, red)
	writePNG(t, filepath.Join(dir, "art", "walk0.png"), 8, 16, green)
	writePNG(t, filepath.Join(dir, "art", "walk1.png"), 8, 16, blue)
	writePNG(t, filepath.Join(dir, "art", "coin.png"), 4, 4, red)

	file := filepath.Join(dir, "game.spritepack")
	require.NoError(t, os.WriteFile(file, []byte(testProject), 0o644))
	return file
}

func TestLoadProject(t *testing.T) {
	file := writeTestProject(t)
	dir := filepath.Dir(file)

	p, err := LoadProject(context.Background(), surface.Software{}, file, 2, nil)
	require.NoError(t, err)
	require.Len(t, p.Atlases, 2)

	hero := p.Atlases[0]
	o := hero.Options()
	assert.Equal(t, filepath.Join(dir, "hero.atlas"), o.OutputFile)
	assert.Equal(t, filepath.Join(dir, "hero.png"), o.OutputImage)
	assert.Equal(t, 2, o.Padding)
	assert.Equal(t, bleed.Debug, o.PaddingMode)
	assert.Equal(t, atlasfile.Text, o.Format)

	require.Len(t, hero.Sprites(), 3)
	assert.Equal(t, "walk0", hero.Sprites()[1].Name)
	require.Len(t, hero.Animations(), 2)
	assert.Equal(t, []int{0}, hero.Animations()[0].Frames)
	assert.Equal(t, "walk", hero.Animations()[1].Name)
	assert.Equal(t, float32(0.1), hero.Animations()[1].FrameTime)
	assert.Equal(t, []int{2, 1}, hero.Animations()[1].Frames)

	items := p.Atlases[1].Options()
	assert.Equal(t, imagefile.TGA, items.ImageFormat)
	assert.Equal(t, atlasfile.JSON, items.Format)
	assert.True(t, items.Square)
	assert.True(t, items.YUp)
	assert.False(t, items.Normalize)
}

func TestLoadProjectErrors(t *testing.T) {
	dir := t.TempDir()

	tables := map[string]string{
		"no atlases":   "# nothing\n",
		"exporter":     "atlas a\nexporter xml\n",
		"padding mode": "atlas a\npadding_mode 7\n",
		"missing":      "atlas a\nsprite nope.png\n",
		"frames":       "atlas a\nanimation x\nframes 0\n",
	}

	for name, contents := range tables {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(dir, name+".spritepack")
			require.NoError(t, os.WriteFile(file, []byte(contents), 0o644))

			_, err := LoadProject(context.Background(), surface.Software{}, file, 1, nil)
			assert.Error(t, err)
		})
	}
}

func TestSaveProjectRoundTrip(t *testing.T) {
	file := writeTestProject(t)

	p, err := LoadProject(context.Background(), surface.Software{}, file, 2, nil)
	require.NoError(t, err)

	saved := filepath.Join(filepath.Dir(file), "copy.spritepack")
	p.Filename = saved
	require.NoError(t, p.Save())

	b, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Contains(t, string(b), "sprite "+filepath.Join("art", "walk1.png")+"\n")
	assert.Contains(t, string(b), "frames 2 1\n")

	q, err := LoadProject(context.Background(), surface.Software{}, saved, 2, nil)
	require.NoError(t, err)
	require.Len(t, q.Atlases, len(p.Atlases))

	for i := range p.Atlases {
		assert.Equal(t, p.Atlases[i].Options(), q.Atlases[i].Options())
		assert.Equal(t, p.Atlases[i].Animations(), q.Atlases[i].Animations())
		require.Len(t, q.Atlases[i].Sprites(), len(p.Atlases[i].Sprites()))
		for j, s := range p.Atlases[i].Sprites() {
			assert.Equal(t, s.Filename, q.Atlases[i].Sprites()[j].Filename)
		}
	}
}

func TestSaveRejectsSpriteWithoutFile(t *testing.T) {
	dir := t.TempDir()
	p, err := NewProject(surface.Software{}, filepath.Join(dir, DefaultProject), DefaultOptions(), nil)
	require.NoError(t, err)
	addSprites(t, p.Atlases[0], 0, solidSprite(t, "mem", 2, 2, red))

	assert.Error(t, p.Save())
}

func TestExportAll(t *testing.T) {
	file := writeTestProject(t)
	dir := filepath.Dir(file)

	p, err := LoadProject(context.Background(), surface.Software{}, file, 2, nil)
	require.NoError(t, err)

	empty, err := p.AddAtlas(outputOptions(filepath.Join(dir, "art")))
	require.NoError(t, err)
	assert.Empty(t, empty.Sprites())

	err = p.ExportAll()
	assert.ErrorIs(t, err, ErrNothingToExport)

	for _, name := range []string{"hero.atlas", "hero.png", "items.json", "items.tga"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.NoFileExists(t, filepath.Join(dir, "art", "out.atlas"))
}
