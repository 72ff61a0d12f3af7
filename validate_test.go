// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package war2pud

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshWriteMap(t *testing.T) *Map {
	t.Helper()
	path := filepath.Join(t.TempDir(), "check.pud")
	m, err := Open(path, ModeWrite)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	require.NoError(t, m.DimensionsSet(Dimensions64))
	return m
}

func TestCheckRejectsTooFewStartLocations(t *testing.T) {
	m := freshWriteMap(t)
	require.NoError(t, m.UnitAdd(1, 1, 0, uint8(HumanStart), 0))

	assert.ErrorIs(t, m.Check(), ErrNotEnoughStartLocations)
}

func TestCheckRejectsDuplicateStartLocation(t *testing.T) {
	m := freshWriteMap(t)
	require.NoError(t, m.UnitAdd(1, 1, 0, uint8(HumanStart), 0))
	require.NoError(t, m.UnitAdd(5, 5, 0, uint8(HumanStart), 0))
	require.NoError(t, m.UnitAdd(60, 60, 1, uint8(OrcStart), 0))

	assert.ErrorIs(t, m.Check(), ErrTooManyStartLocations)
}

func TestCheckRejectsUnitWithoutStartLocation(t *testing.T) {
	m := freshWriteMap(t)
	require.NoError(t, m.UnitAdd(1, 1, 0, uint8(HumanStart), 0))
	require.NoError(t, m.UnitAdd(2, 2, 0, uint8(Footman), 0))
	require.NoError(t, m.UnitAdd(60, 60, 1, uint8(OrcStart), 0))
	require.NoError(t, m.UnitAdd(61, 61, 1, uint8(Grunt), 0))
	require.NoError(t, m.UnitAdd(10, 10, 2, uint8(Footman), 0))

	assert.ErrorIs(t, m.Check(), ErrNoStartLocation)
}

func TestCheckRejectsStartLocationWithoutUnits(t *testing.T) {
	m := freshWriteMap(t)
	require.NoError(t, m.UnitAdd(1, 1, 0, uint8(HumanStart), 0))
	require.NoError(t, m.UnitAdd(60, 60, 1, uint8(OrcStart), 0))

	assert.ErrorIs(t, m.Check(), ErrEmptyPlayer)
}

func TestCheckDemotesUnusedPlayersToNobody(t *testing.T) {
	m := freshWriteMap(t)
	require.NoError(t, m.UnitAdd(1, 1, 0, uint8(HumanStart), 0))
	require.NoError(t, m.UnitAdd(2, 2, 0, uint8(Footman), 0))
	require.NoError(t, m.UnitAdd(60, 60, 1, uint8(OrcStart), 0))
	require.NoError(t, m.UnitAdd(61, 61, 1, uint8(Grunt), 0))

	require.NoError(t, m.Check())
	assert.Equal(t, OwnerNobody, m.Owner[2])
	assert.Equal(t, OwnerNobody, m.Owner[7])
}

func TestCheckPassesOnValidTwoPlayerMap(t *testing.T) {
	m := freshWriteMap(t)
	require.NoError(t, m.UnitAdd(1, 1, 0, uint8(HumanStart), 0))
	require.NoError(t, m.UnitAdd(2, 2, 0, uint8(Footman), 0))
	require.NoError(t, m.UnitAdd(60, 60, 1, uint8(OrcStart), 0))
	require.NoError(t, m.UnitAdd(61, 61, 1, uint8(Grunt), 0))

	require.NoError(t, m.Check())
	assert.Equal(t, 2, m.StartingPoints)
}
