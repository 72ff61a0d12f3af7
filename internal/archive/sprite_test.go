package archive

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSingleFrameSprite assembles a one-frame sprite entry with row opcode
// streams supplied verbatim, wiring up the header, frame table and row
// offset words around them.
func buildSingleFrameSprite(w, h byte, rows [][]byte) []byte {
	dataStart := 14
	rowTableLen := len(rows) * 2

	buf := make([]byte, 0, dataStart+rowTableLen+64)
	buf = append(buf, u16le(1)...)           // count
	buf = append(buf, u16le(uint16(w))...)   // max_w
	buf = append(buf, u16le(uint16(h))...)   // max_h
	buf = append(buf, 0, 0, w, h)            // frame header: x, y, w, h
	buf = append(buf, u32le(uint32(dataStart))...)

	rowData := make([]byte, 0, 32)
	rowOffsets := make([]byte, 0, rowTableLen)
	cursor := rowTableLen
	for _, row := range rows {
		rowOffsets = append(rowOffsets, u16le(uint16(cursor))...)
		rowData = append(rowData, row...)
		cursor += len(row)
	}

	buf = append(buf, rowOffsets...)
	buf = append(buf, rowData...)
	return buf
}

func TestDecodeSpriteRLERow(t *testing.T) {
	pal, err := DecodePalette(rawPaletteBytes(), PaletteSprites)
	require.NoError(t, err)

	row0 := []byte{0x04, 0xAA, 0xBB, 0xCC, 0xDD} // 4 literal bytes
	row1 := []byte{0x82, 0x42, 0x11}             // 2 transparent, then 0x11 repeated twice

	data := buildSingleFrameSprite(4, 2, [][]byte{row0, row1})

	var frames []Frame
	err = DecodeSprite(data, pal, func(i int, f Frame) error {
		frames = append(frames, f)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, frames, 1)

	img := frames[0].Image
	assert.Equal(t, pal.Colors[0xAA], img.RGBAAt(0, 0))
	assert.Equal(t, pal.Colors[0xBB], img.RGBAAt(1, 0))
	assert.Equal(t, pal.Colors[0xCC], img.RGBAAt(2, 0))
	assert.Equal(t, pal.Colors[0xDD], img.RGBAAt(3, 0))

	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(1, 1))
	assert.Equal(t, pal.Colors[0x11], img.RGBAAt(2, 1))
	assert.Equal(t, pal.Colors[0x11], img.RGBAAt(3, 1))
}

func TestDecodeSpriteRowLengthMismatch(t *testing.T) {
	pal, err := DecodePalette(rawPaletteBytes(), PaletteSprites)
	require.NoError(t, err)

	// row opcode claims 5 literal bytes but the frame is only 4 pixels wide
	row0 := []byte{0x05, 0x01, 0x02, 0x03, 0x04, 0x05}
	data := buildSingleFrameSprite(4, 1, [][]byte{row0})

	err = DecodeSprite(data, pal, func(i int, f Frame) error { return nil })
	assert.ErrorIs(t, err, ErrCorruptSprite)
}

func TestDecodeSpriteTruncatedInput(t *testing.T) {
	pal, err := DecodePalette(rawPaletteBytes(), PaletteSprites)
	require.NoError(t, err)

	err = DecodeSprite([]byte{0x01, 0x00}, pal, func(i int, f Frame) error { return nil })
	assert.Error(t, err)
}
