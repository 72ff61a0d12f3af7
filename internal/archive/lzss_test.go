package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompressAllLiterals(t *testing.T) {
	src := []byte{0xFF, 'H', 'E', 'L', 'L', 'O'}

	out, err := decompress(src, 5)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", string(out))
}

func TestDecompressBackReference(t *testing.T) {
	// control byte: bit0=1 (literal 'A'), bit1=0 (back-reference)
	// back-reference word 0x4000 -> offset 0, run length 4+3=7
	src := []byte{0x01, 'A', 0x00, 0x40}

	out, err := decompress(src, 8)
	require.NoError(t, err)
	assert.Equal(t, "AAAAAAAA", string(out))
}

func TestDecompressTruncatedInput(t *testing.T) {
	_, err := decompress([]byte{0x01}, 4)
	assert.ErrorIs(t, err, ErrCorruptEntry)
}
