// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package war2pud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEraLayoutForKnownEras(t *testing.T) {
	layout, err := eraLayoutFor(EraSwamp)
	assert.NoError(t, err)
	assert.Equal(t, uint32(9), layout.megaTiles)
}

func TestEraLayoutForUnknownEraFails(t *testing.T) {
	_, err := eraLayoutFor(Era(99))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPlayerTintRampMatchesPlayerBaseColor(t *testing.T) {
	ramp := playerTintRamp(0) // red
	assert.Len(t, ramp, tintRangeEnd-tintRangeStart)
	for _, c := range ramp {
		assert.Equal(t, uint8(0xFF), c.A)
		assert.Equal(t, uint8(0), c.G)
		assert.Equal(t, uint8(0), c.B)
	}
}

func TestScaleChannelBounds(t *testing.T) {
	assert.Equal(t, uint8(0), scaleChannel(0, 0x80))
	assert.Equal(t, uint8(0xFF), scaleChannel(0xFF, 0xFF))
}

func TestOpenArchiveRejectsMissingFile(t *testing.T) {
	_, err := OpenArchive("/nonexistent/path.war")
	assert.Error(t, err)
}
