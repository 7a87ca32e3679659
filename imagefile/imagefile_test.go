package imagefile

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opaque() *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x * 60), uint8(y * 100), 0x7f, 0xff})
		}
	}
	return m
}

func requireSamePixels(t *testing.T, want, got image.Image) {
	t.Helper()
	require.Equal(t, want.Bounds().Size(), got.Bounds().Size())
	b := want.Bounds()
	g := got.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			w := color.NRGBAModel.Convert(want.At(b.Min.X+x, b.Min.Y+y))
			h := color.NRGBAModel.Convert(got.At(g.Min.X+x, g.Min.Y+y))
			require.Equal(t, w, h, "pixel %d,%d", x, y)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, f := range []Format{PNG, TGA, BMP} {
		t.Run(f.String(), func(t *testing.T) {
			b := new(bytes.Buffer)
			require.NoError(t, Encode(b, opaque(), f))

			m, err := Decode(b, f == TGA)
			require.NoError(t, err)
			requireSamePixels(t, opaque(), m)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []Format{PNG, TGA, BMP} {
		path := filepath.Join(dir, "sprite."+f.Ext())
		b := new(bytes.Buffer)
		require.NoError(t, Encode(b, opaque(), f))
		require.NoError(t, os.WriteFile(path, b.Bytes(), 0o644))

		m, err := Load(path)
		require.NoError(t, err, path)
		requireSamePixels(t, opaque(), m)
	}

	_, err := Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"png": PNG, ".TGA": TGA, "bmp": BMP}
	for in, want := range tests {
		f, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, f)
	}

	f, err := FormatFromPath("out/atlas.bmp")
	require.NoError(t, err)
	assert.Equal(t, BMP, f)

	_, err = ParseFormat("gif")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, "", Format(5).Ext())
	assert.ErrorIs(t, Encode(new(bytes.Buffer), opaque(), Format(5)), ErrUnknownFormat)
}
