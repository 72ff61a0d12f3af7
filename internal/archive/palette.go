// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package archive

import (
	"fmt"
	"image/color"
)

// PaletteSize is the number of entries in a WAR palette.
const PaletteSize = 256

// Kind selects how index 0 of a decoded palette is treated.
type Kind int

const (
	// PaletteTiles keeps every entry, including index 0, fully opaque.
	PaletteTiles Kind = iota
	// PaletteSprites marks index 0 as fully transparent.
	PaletteSprites
)

// Palette is a decoded 256-entry RGBA colour table.
type Palette struct {
	Kind    Kind
	Colors  [PaletteSize]color.RGBA
	// TintStart and TintEnd bound the hue ramp substituted for player
	// colouring when decoding tinted sprites (see sprite.go).
	TintStart, TintEnd int
}

// DecodePalette converts 256 RGB triples (768 bytes) into a Palette.
func DecodePalette(data []byte, kind Kind) (*Palette, error) {
	if len(data) < PaletteSize*3 {
		return nil, fmt.Errorf("%w: palette data too short, want %d bytes got %d", ErrCorruptEntry, PaletteSize*3, len(data))
	}

	p := &Palette{Kind: kind}
	for i := 0; i < PaletteSize; i++ {
		r, g, b := data[i*3], data[i*3+1], data[i*3+2]
		alpha := uint8(0xFF)
		if kind == PaletteSprites && i == 0 {
			alpha = 0
		}
		p.Colors[i] = color.RGBA{R: r, G: g, B: b, A: alpha}
	}
	return p, nil
}

// WithTintRange records the hue-ramp bounds used for player-colour
// substitution; it returns p for chaining.
func (p *Palette) WithTintRange(start, end int) *Palette {
	p.TintStart, p.TintEnd = start, end
	return p
}

// Tinted returns a copy of the palette with entries in [TintStart,TintEnd)
// replaced by ramp, used to recolour a unit sprite for a given player.
func (p *Palette) Tinted(ramp []color.RGBA) *Palette {
	out := *p
	for i, c := range ramp {
		idx := p.TintStart + i
		if idx < p.TintStart || idx >= p.TintEnd || idx >= PaletteSize {
			break
		}
		out.Colors[idx] = c
	}
	return &out
}
