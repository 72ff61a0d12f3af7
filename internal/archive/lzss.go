// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package archive

import (
	"encoding/binary"
	"fmt"
)

// windowSize is the size of the sliding-window ring buffer used by the
// archive's bespoke LZ compression. Back-references address into this
// ring buffer rather than into the output stream directly.
const windowSize = 4096

// decompress inflates a compressed entry payload using the archive's
// byte-oriented LZ scheme: a control byte's bits (LSB first) select
// between a literal byte and a 2-byte back-reference into a 4096-byte
// sliding window, one flag bit per literal or back-reference until rawLen
// bytes have been written.
//
// A back-reference word packs the window offset in its low 12 bits and an
// extra run length in the high bits; a reference always copies at least 3
// bytes (length = word>>12 + 3).
func decompress(src []byte, rawLen int) ([]byte, error) {
	out := make([]byte, 0, rawLen)
	window := make([]byte, windowSize)
	var pos int // position in window, also total bytes written so far mod windowSize

	readPos := 0
	for len(out) < rawLen {
		if readPos >= len(src) {
			return nil, fmt.Errorf("%w: ran out of input before producing %d bytes (got %d)", ErrCorruptEntry, rawLen, len(out))
		}
		mask := src[readPos]
		readPos++

		for bit := 0; bit < 8 && len(out) < rawLen; bit++ {
			if mask&(1<<uint(bit)) != 0 {
				// literal byte
				if readPos >= len(src) {
					return nil, fmt.Errorf("%w: truncated literal", ErrCorruptEntry)
				}
				b := src[readPos]
				readPos++

				window[pos%windowSize] = b
				pos++
				out = append(out, b)
				continue
			}

			// back-reference: 16-bit little-endian word
			if readPos+2 > len(src) {
				return nil, fmt.Errorf("%w: truncated back-reference", ErrCorruptEntry)
			}
			word := binary.LittleEndian.Uint16(src[readPos:])
			readPos += 2

			offset := int(word % windowSize)
			runs := int(word / windowSize)

			for m := 0; m <= runs+2 && len(out) < rawLen; m++ {
				b := window[(offset+m)%windowSize]
				window[pos%windowSize] = b
				pos++
				out = append(out, b)
			}
		}
	}

	return out, nil
}
