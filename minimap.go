// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package war2pud

import (
	"image"
	"image/color"

	"github.com/kelindar/war2pud/internal/bitmap"
)

// Minimap rasterises m into a one-pixel-per-tile overview image: each tile
// becomes the dominant colour of its decoded artwork, then every placed
// unit overdraws its tile with its player or resource colour so start
// locations and bases stand out.
func (m *Map) Minimap(a *Archive) (*image.RGBA, error) {
	if err := m.requireMode(ModeRead); err != nil {
		return nil, err
	}
	if m.state != stateParsed {
		return nil, ErrNotInitialized
	}

	img := image.NewRGBA(image.Rect(0, 0, m.MapW, m.MapH))

	tileColor := make(map[uint16]color.RGBA, 64)
	for y := 0; y < m.MapH; y++ {
		for x := 0; x < m.MapW; x++ {
			id := m.TilesMap[y*m.MapW+x]
			c, ok := tileColor[id]
			if !ok {
				tile, err := a.TileImage(m.Era, id)
				if err != nil {
					c = color.RGBA{}
				} else {
					c = bitmap.DominantColor(tile)
				}
				tileColor[id] = c
			}
			img.Set(x, y, c)
		}
	}

	for _, u := range m.Units {
		if int(u.X) >= m.MapW || int(u.Y) >= m.MapH {
			continue
		}
		img.Set(int(u.X), int(u.Y), ColorForUnit(Unit(u.Type), u.Owner))
	}

	return img, nil
}
