package archive

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawPaletteBytes() []byte {
	data := make([]byte, PaletteSize*3)
	for i := 0; i < PaletteSize; i++ {
		data[i*3] = byte(i)
		data[i*3+1] = byte(i * 2)
		data[i*3+2] = byte(i * 3)
	}
	return data
}

func TestDecodePaletteTiles(t *testing.T) {
	pal, err := DecodePalette(rawPaletteBytes(), PaletteTiles)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 0, A: 0xFF}, pal.Colors[0], "tile palettes keep index 0 opaque")
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 0xFF}, pal.Colors[10])
}

func TestDecodePaletteSpritesTransparentIndexZero(t *testing.T) {
	pal, err := DecodePalette(rawPaletteBytes(), PaletteSprites)
	require.NoError(t, err)

	assert.Equal(t, uint8(0), pal.Colors[0].A, "index 0 is transparent for sprite palettes")
	assert.Equal(t, uint8(0xFF), pal.Colors[1].A)
}

func TestDecodePaletteTooShort(t *testing.T) {
	_, err := DecodePalette(make([]byte, 10), PaletteTiles)
	assert.ErrorIs(t, err, ErrCorruptEntry)
}

func TestPaletteTinted(t *testing.T) {
	pal, err := DecodePalette(rawPaletteBytes(), PaletteSprites)
	require.NoError(t, err)
	pal.WithTintRange(16, 24)

	ramp := make([]color.RGBA, 8)
	for i := range ramp {
		ramp[i] = color.RGBA{R: 0xFF, G: 0, B: 0, A: 0xFF}
	}

	tinted := pal.Tinted(ramp)
	for i := 16; i < 24; i++ {
		assert.Equal(t, color.RGBA{R: 0xFF, G: 0, B: 0, A: 0xFF}, tinted.Colors[i])
	}
	// original is untouched
	assert.NotEqual(t, color.RGBA{R: 0xFF, G: 0, B: 0, A: 0xFF}, pal.Colors[16])
	// entries outside the tint range are preserved
	assert.Equal(t, pal.Colors[30], tinted.Colors[30])
}
