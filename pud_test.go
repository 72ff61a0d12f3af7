// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package war2pud

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenWriteCreatesFreshDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.pud")

	m, err := Open(path, ModeWrite)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, EraForest, m.Era)
	assert.Equal(t, 32, m.MapW)
	assert.Equal(t, 32, m.MapH)
	assert.Equal(t, versionExpansion, m.Version)
	assert.True(t, m.DefaultUDTA)
	assert.True(t, m.DefaultUGRD)
	assert.True(t, m.DefaultAllow)
}

func TestOpenMissingFileWithoutWriteModeFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.pud")

	_, err := Open(path, ModeRead)
	assert.Error(t, err)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("", ModeRead)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTileSetGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.pud")
	m, err := Open(path, ModeRead|ModeWrite)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.TileSet(3, 5, 0x0042))
	got, err := m.TileGet(3, 5)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0042), got)
}

func TestTileSetOutOfBoundsFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bounds.pud")
	m, err := Open(path, ModeWrite)
	require.NoError(t, err)
	defer m.Close()

	err = m.TileSet(32, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSettersRequireWriteMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readonly.pud")
	w, err := Open(path, ModeWrite)
	require.NoError(t, err)
	require.NoError(t, w.TagSet(1))
	var buf fileBuffer
	require.NoError(t, w.Write(&buf))
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.data, 0o644))

	m, err := Open(path, ModeRead)
	require.NoError(t, err)
	defer m.Close()

	assert.ErrorIs(t, m.EraSet(EraWinter), ErrModeMismatch)
	assert.ErrorIs(t, m.TileSet(0, 0, 1), ErrModeMismatch)
}

func TestDescriptionSetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desc.pud")
	m, err := Open(path, ModeRead|ModeWrite)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.DescriptionSet("A Dark Portal"))
	got, err := m.DescriptionGet()
	require.NoError(t, err)
	assert.Equal(t, "A Dark Portal", got)
}

func TestDescriptionSetTruncatesLongText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desc-long.pud")
	m, err := Open(path, ModeRead|ModeWrite)
	require.NoError(t, err)
	defer m.Close()

	long := "this description is far longer than thirty one characters"
	require.NoError(t, m.DescriptionSet(long))
	got, err := m.DescriptionGet()
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), 31)
	assert.Equal(t, long[:len(got)], got)
}

func TestUnitAddOutOfBoundsFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unit-bounds.pud")
	m, err := Open(path, ModeWrite)
	require.NoError(t, err)
	defer m.Close()

	err = m.UnitAdd(-1, 0, 0, uint8(Footman), 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// fileBuffer is a minimal in-memory io.Writer used so write/parse round
// trips don't need a real file on disk.
type fileBuffer struct {
	data []byte
}

func (b *fileBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}
