// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package archive

import (
	"fmt"
	"image"
	"image/color"

	"github.com/kelindar/war2pud/internal/cursor"
)

// RLE opcode bits, per spec §4.5 and the original war2tools units.c decoder.
const (
	opTransparent = 0x80 // top bit set: next (op&0x7F) pixels are transparent
	opRepeat      = 0x40 // bit 6 set: repeat the next byte (op&0x3F) times
)

// Frame is a single decoded sprite frame, in the sprite's own coordinate
// space (X, Y are the frame's offset within the sprite's bounding box).
type Frame struct {
	X, Y  int
	Image *image.RGBA
}

// FrameSink receives decoded frames in order. The image is borrowed for the
// duration of the call; implementations that need to retain it must copy.
type FrameSink func(index int, frame Frame) error

// DecodeSprite decodes a WAR sprite entry (`{u16 count; u16 maxW; u16 maxH;
// frame_header[count]; packed_data}`) using pal for colour expansion and
// emits each frame through sink.
func DecodeSprite(data []byte, pal *Palette, sink FrameSink) error {
	c := cursor.New(data)

	count, err := c.ReadU16()
	if err != nil {
		return fmt.Errorf("%w: sprite header: %v", ErrCorruptEntry, err)
	}
	if _, err := c.ReadU16(); err != nil { // maxW, unused beyond validation
		return fmt.Errorf("%w: sprite header: %v", ErrCorruptEntry, err)
	}
	if _, err := c.ReadU16(); err != nil { // maxH
		return fmt.Errorf("%w: sprite header: %v", ErrCorruptEntry, err)
	}

	for i := 0; i < int(count); i++ {
		headerOff := 6 + i*8
		header, err := peekAt(data, headerOff, 8)
		if err != nil {
			return fmt.Errorf("%w: frame %d header: %v", cursor.ErrEndOfInput, i, err)
		}

		x := int(header[0])
		y := int(header[1])
		w := int(header[2])
		h := int(header[3])
		dataStart := int(le32(header[4:8]))

		img, err := decodeSpriteFrame(data, dataStart, w, h, pal)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		if err := sink(i, Frame{X: x, Y: y, Image: img}); err != nil {
			return err
		}
	}

	return nil
}

func decodeSpriteFrame(data []byte, dataStart, w, h int, pal *Palette) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for row := 0; row < h; row++ {
		rowOffHdr, err := peekAt(data, dataStart+row*2, 2)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d offset", cursor.ErrEndOfInput, row)
		}
		rowOff := dataStart + int(le16(rowOffHdr))

		pixels, err := decodeRow(data, rowOff, w, pal)
		if err != nil {
			return nil, err
		}
		for x, px := range pixels {
			img.Set(x, row, px)
		}
	}

	return img, nil
}

// decodeRow decodes a single opcode-encoded row into exactly w RGBA pixels.
func decodeRow(data []byte, offset, w int, pal *Palette) ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, w)
	o := offset

	for len(out) < w {
		if o >= len(data) {
			return nil, fmt.Errorf("%w: row decode ran past input", cursor.ErrEndOfInput)
		}
		op := data[o]
		o++

		switch {
		case op&opTransparent != 0:
			n := int(op &^ opTransparent)
			for k := 0; k < n; k++ {
				out = append(out, color.RGBA{})
			}
		case op&opRepeat != 0:
			n := int(op &^ opRepeat)
			if o >= len(data) {
				return nil, fmt.Errorf("%w: truncated repeat run", cursor.ErrEndOfInput)
			}
			idx := data[o]
			o++
			px := pal.Colors[idx]
			for k := 0; k < n; k++ {
				out = append(out, px)
			}
		default:
			n := int(op)
			if o+n > len(data) {
				return nil, fmt.Errorf("%w: truncated literal run", cursor.ErrEndOfInput)
			}
			for k := 0; k < n; k++ {
				out = append(out, pal.Colors[data[o+k]])
			}
			o += n
		}
	}

	if len(out) != w {
		return nil, fmt.Errorf("%w: row produced %d pixels, want %d", ErrCorruptSprite, len(out), w)
	}
	return out, nil
}

func peekAt(data []byte, off, n int) ([]byte, error) {
	if off < 0 || off+n > len(data) {
		return nil, cursor.ErrEndOfInput
	}
	return data[off : off+n], nil
}

func le16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
