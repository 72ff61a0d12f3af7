// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package archive

import (
	"fmt"
	"image"

	"github.com/kelindar/war2pud/internal/cursor"
)

// minitileSize is the edge length in pixels of a minitile, the smallest
// unit a tileset composes. A full 32x32 map tile is built from four
// minitiles arranged in a 2x2 grid.
const minitileSize = 16

// TileSink receives decoded map tiles in ascending id order.
type TileSink func(id uint16, img *image.RGBA) error

// minitileEntries is the fixed pixel count of one minitile (16x16 palette
// indices, one byte each).
const minitileEntries = minitileSize * minitileSize

// tilesetConfig holds DecodeTileset's optional behaviour, configured via
// TilesetOption.
type tilesetConfig struct {
	skipFogOfWar bool
}

// TilesetOption configures DecodeTileset.
type TilesetOption func(*tilesetConfig)

// WithSkipFogOfWar excludes tile ids 0-15, the game's fog-of-war overlay
// placeholders, from the ids DecodeTileset sends to its sink. Without it,
// every tile id is decoded and offered to the sink, which is then free to
// apply its own policy.
func WithSkipFogOfWar() TilesetOption {
	return func(c *tilesetConfig) { c.skipFogOfWar = true }
}

// DecodeTileset reconstructs every 32x32 map tile for one era from two
// archive entries and the era's palette (no tile-flag table is read):
//
//   - megaTiles: for each tile id, four u16 minitile indices (NW,NE,SW,SE)
//   - miniTiles: the minitile atlas, each minitile stored as 16x16 palette
//     index bytes, addressed by the indices in megaTiles
//   - pal: the era's palette, already decoded
//
// Every tile id is decoded and offered to sink in ascending order; whether
// ids 0-15 (the game's fog-of-war placeholders) are worth keeping is a
// decision left to the caller, by way of WithSkipFogOfWar.
func DecodeTileset(megaTiles, miniTiles []byte, pal *Palette, sink TileSink, opts ...TilesetOption) error {
	var cfg tilesetConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	c := cursor.New(megaTiles)
	tileCount := c.Remaining() / 8 // 4 x u16 per tile

	for id := 0; id < tileCount; id++ {
		quad, err := c.ReadBytes(8)
		if err != nil {
			return fmt.Errorf("%w: mega tile %d: %v", ErrCorruptEntry, id, err)
		}

		if cfg.skipFogOfWar && id < 16 {
			continue
		}

		img := image.NewRGBA(image.Rect(0, 0, 2*minitileSize, 2*minitileSize))
		corners := [4]struct{ dx, dy int }{
			{0, 0}, {minitileSize, 0}, {0, minitileSize}, {minitileSize, minitileSize},
		}

		for i, corner := range corners {
			idx := le16(quad[i*2 : i*2+2])
			if err := blitMinitile(img, miniTiles, idx, pal, corner.dx, corner.dy); err != nil {
				return fmt.Errorf("tile %d: %w", id, err)
			}
		}

		if err := sink(uint16(id), img); err != nil {
			return err
		}
	}

	return nil
}

func blitMinitile(dst *image.RGBA, miniTiles []byte, index uint16, pal *Palette, ox, oy int) error {
	offset := int(index) * minitileEntries
	if offset+minitileEntries > len(miniTiles) {
		return fmt.Errorf("%w: minitile index %d out of range", ErrCorruptEntry, index)
	}

	block := miniTiles[offset : offset+minitileEntries]
	for y := 0; y < minitileSize; y++ {
		for x := 0; x < minitileSize; x++ {
			px := pal.Colors[block[y*minitileSize+x]]
			dst.Set(ox+x, oy+y, px)
		}
	}
	return nil
}
