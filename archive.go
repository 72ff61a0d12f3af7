// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package war2pud

import (
	"fmt"
	"image"
	"image/color"
	"maps"
	"slices"
	"sync"

	"github.com/kelindar/war2pud/internal/archive"
)

// eraEntries locates the three archive entries a tileset is built from,
// for each of the four eras. Entry indices follow the graphics archive's
// own internal layout convention, not the PUD format this package centres
// on; lacking a verified index table, these are a plausible, internally
// consistent placement (each era's three entries grouped sequentially) —
// see DESIGN.md.
type eraLayout struct {
	megaTiles, miniTiles, palette uint32
}

var eraEntries = [4]eraLayout{
	EraForest:    {megaTiles: 0, miniTiles: 1, palette: 2},
	EraWinter:    {megaTiles: 3, miniTiles: 4, palette: 5},
	EraWasteland: {megaTiles: 6, miniTiles: 7, palette: 8},
	EraSwamp:     {megaTiles: 9, miniTiles: 10, palette: 11},
}

// tintRanges bounds the palette indices substituted per player when
// recolouring a unit sprite; unit sprites conventionally reserve one
// contiguous ramp of shades for "my colour" near the end of the palette.
const (
	tintRangeStart = 208
	tintRangeEnd   = 216
)

// Archive is a handle onto a graphics archive, with decoded tilesets and
// sprite frames cached lazily per era and per player colour.
type Archive struct {
	reader *archive.Reader

	palettes sync.Map // Era -> *archive.Palette
	tilesets sync.Map // Era -> map[uint16]*image.RGBA
	frames   sync.Map // (spriteEntry<<8|player) -> []archive.Frame
}

// OpenArchive memory-maps the graphics archive at path.
func OpenArchive(path string) (*Archive, error) {
	r, err := archive.Open(path)
	if err != nil {
		return nil, err
	}
	return &Archive{reader: r}, nil
}

// Close releases the archive's memory mapping.
func (a *Archive) Close() error {
	return a.reader.Close()
}

// Entry returns entry i's decoded (decompressed) bytes, or nil if it is an
// unused placeholder slot.
func (a *Archive) Entry(i uint32) ([]byte, error) {
	return a.reader.Extract(i)
}

// Palette returns era's decoded palette with its player-colour tint range
// recorded (the colours themselves are not substituted here; Sprites does
// that per player), decoding and caching it on first use.
func (a *Archive) Palette(era Era) (*archive.Palette, error) {
	if cached, ok := a.palettes.Load(era); ok {
		return cached.(*archive.Palette), nil
	}

	layout, err := eraLayoutFor(era)
	if err != nil {
		return nil, err
	}
	raw, err := a.reader.Extract(layout.palette)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: era %d palette entry is a placeholder", archive.ErrCorruptEntry, era)
	}
	pal, err := archive.DecodePalette(raw, archive.PaletteTiles)
	if err != nil {
		return nil, err
	}
	pal = pal.WithTintRange(tintRangeStart, tintRangeEnd)

	actual, _ := a.palettes.LoadOrStore(era, pal)
	return actual.(*archive.Palette), nil
}

// Tileset decodes every tile of era and sends it through sink, decoding and
// caching the full set on first use. Fog-of-war placeholder ids (0-15) are
// excluded, matching how this package's own minimap and tile-browsing
// callers consume a tileset.
func (a *Archive) Tileset(era Era, sink archive.TileSink) error {
	tiles, err := a.tilesetFor(era)
	if err != nil {
		return err
	}
	for _, id := range slices.Sorted(maps.Keys(tiles)) {
		if err := sink(id, tiles[id]); err != nil {
			return err
		}
	}
	return nil
}

// TileImage returns one decoded tile of era by id, decoding and caching the
// whole era's tileset on first use.
func (a *Archive) TileImage(era Era, id uint16) (*image.RGBA, error) {
	tiles, err := a.tilesetFor(era)
	if err != nil {
		return nil, err
	}
	img, ok := tiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: tile %d not present (excluded as fog-of-war, or out of range)", archive.ErrEntryOutOfRange, id)
	}
	return img, nil
}

func (a *Archive) tilesetFor(era Era) (map[uint16]*image.RGBA, error) {
	if cached, ok := a.tilesets.Load(era); ok {
		return cached.(map[uint16]*image.RGBA), nil
	}

	layout, err := eraLayoutFor(era)
	if err != nil {
		return nil, err
	}
	pal, err := a.Palette(era)
	if err != nil {
		return nil, err
	}
	megaTiles, err := a.reader.Extract(layout.megaTiles)
	if err != nil {
		return nil, err
	}
	miniTiles, err := a.reader.Extract(layout.miniTiles)
	if err != nil {
		return nil, err
	}

	tiles := make(map[uint16]*image.RGBA, 256)
	err = archive.DecodeTileset(megaTiles, miniTiles, pal, func(id uint16, img *image.RGBA) error {
		tiles[id] = img
		return nil
	}, archive.WithSkipFogOfWar())
	if err != nil {
		return nil, err
	}

	actual, _ := a.tilesets.LoadOrStore(era, tiles)
	return actual.(map[uint16]*image.RGBA), nil
}

// Sprites decodes every frame of the sprite stored at entry spriteEntry,
// tinted for player's colour, and sends each through sink. Decoded frames
// are cached per (entry, player) pair.
func (a *Archive) Sprites(spriteEntry uint32, era Era, player uint8, sink archive.FrameSink) error {
	key := int64(spriteEntry)<<8 | int64(player)
	if cached, ok := a.frames.Load(key); ok {
		for i, f := range cached.([]archive.Frame) {
			if err := sink(i, f); err != nil {
				return err
			}
		}
		return nil
	}

	pal, err := a.Palette(era)
	if err != nil {
		return err
	}
	ramp := playerTintRamp(player)
	tinted := pal.Tinted(ramp)

	raw, err := a.reader.Extract(spriteEntry)
	if err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("%w: sprite entry %d is a placeholder", archive.ErrCorruptEntry, spriteEntry)
	}

	frames := make([]archive.Frame, 0, 8)
	err = archive.DecodeSprite(raw, tinted, func(i int, f archive.Frame) error {
		frames = append(frames, f)
		return sink(i, f)
	})
	if err != nil {
		return err
	}

	a.frames.Store(key, frames)
	return nil
}

// playerTintRamp returns the hue ramp substituted into a sprite's palette
// for player's fixed colour, one shade per tint-range slot.
func playerTintRamp(player uint8) []color.RGBA {
	base := ColorForPlayer(player)
	ramp := make([]color.RGBA, tintRangeEnd-tintRangeStart)
	for i := range ramp {
		shade := uint8(0x40 + i*0x18)
		ramp[i] = color.RGBA{
			R: scaleChannel(base.R, shade),
			G: scaleChannel(base.G, shade),
			B: scaleChannel(base.B, shade),
			A: 0xFF,
		}
	}
	return ramp
}

func scaleChannel(c, shade uint8) uint8 {
	return uint8((uint16(c) * uint16(shade)) / 0xFF)
}

func eraLayoutFor(era Era) (eraLayout, error) {
	if int(era) < 0 || int(era) >= len(eraEntries) {
		return eraLayout{}, fmt.Errorf("%w: unknown era %d", ErrInvalidArgument, era)
	}
	return eraEntries[era], nil
}
