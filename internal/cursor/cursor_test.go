package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadU8(t *testing.T) {
	c := New([]byte{0x01, 0x02, 0x03})

	v, err := c.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x01), v)
	assert.Equal(t, 1, c.Pos())

	c.pos = 3
	_, err = c.ReadU8()
	assert.ErrorIs(t, err, ErrEndOfInput)
	assert.Equal(t, 3, c.Pos(), "failed read must not move the cursor")
}

func TestReadU16(t *testing.T) {
	c := New([]byte{0x01, 0x02, 0x03, 0x04})

	v, err := c.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0201), v)

	_, err = c.ReadU16()
	require.NoError(t, err)

	_, err = c.ReadU16()
	assert.ErrorIs(t, err, ErrEndOfInput)
}

func TestReadU32(t *testing.T) {
	c := New([]byte{0x01, 0x02, 0x03, 0x04, 0x05})

	v, err := c.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x04030201), v)

	_, err = c.ReadU32()
	assert.ErrorIs(t, err, ErrEndOfInput)
}

func TestReadBytesAndInto(t *testing.T) {
	c := New([]byte("WAR2 MAP"))

	b, err := c.ReadBytes(4)
	require.NoError(t, err)
	assert.Equal(t, "WAR2", string(b))

	dst := make([]byte, 4)
	require.NoError(t, c.ReadInto(dst))
	assert.Equal(t, " MAP", string(dst))

	_, err = c.ReadBytes(1)
	assert.ErrorIs(t, err, ErrEndOfInput)
}

func TestSeekAndRewind(t *testing.T) {
	c := New(make([]byte, 10))

	require.NoError(t, c.Seek(5))
	assert.Equal(t, 5, c.Remaining())

	assert.ErrorIs(t, c.Seek(-1), ErrEndOfInput)
	assert.ErrorIs(t, c.Seek(11), ErrEndOfInput)

	c.Rewind()
	assert.Equal(t, 0, c.Pos())
}

func TestPeekBytesDoesNotAdvance(t *testing.T) {
	c := New([]byte{0xAA, 0xBB})

	b, err := c.PeekBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, b)
	assert.Equal(t, 0, c.Pos())
}
