// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package archive reads the WAR graphics archive: a magic/version header
// followed by an entry offset table and a data section, optionally
// compressed per entry with a bespoke byte-oriented sliding-window LZ
// scheme. It is the WAR-side analogue of the teacher's internal/mul
// package, adapted from a dual mul+idx file pair to a single
// header-plus-offset-table container.
package archive

import (
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
	"os"

	"codeberg.org/go-mmap/mmap"
	"github.com/kelindar/intmap"
)

// Errors returned by the archive reader, matching the taxonomy in spec §7.
var (
	ErrInvalidArchive  = errors.New("archive: invalid magic/identifier")
	ErrEntryOutOfRange = errors.New("archive: entry index out of range")
	ErrCorruptEntry    = errors.New("archive: corrupt or undecodable entry")
	ErrCorruptSprite   = errors.New("archive: corrupt sprite row data")
	ErrReaderClosed    = errors.New("archive: reader is closed")
)

// compressedFlag is the top byte of an entry's declared-size word; when set
// the entry payload is inflated with the sliding-window LZ decoder.
const compressedFlag = 0x20

// Known 4-byte archive identifiers. Any other leading 4 bytes are rejected
// with ErrInvalidArchive.
var knownMagics = [][4]byte{
	{0x18, 0x00, 0x00, 0x00}, // DOS retail
	{0x19, 0x00, 0x00, 0x00}, // DOS shareware
	{0x00, 0x00, 0x00, 0x1A}, // Mac retail
	{0x00, 0x00, 0x00, 0x19}, // Mac shareware
}

type entry struct {
	offset     uint32
	length     uint32 // bytes stored in the archive (possibly compressed)
	decodedLen uint32 // size after decompression
	compressed bool
}

// Reader provides indexed access to WAR archive entries.
type Reader struct {
	file    *mmap.File
	size    int64
	entries []entry    // non-placeholder entries, in offset-table order
	lookup  *intmap.Map // entry index -> position in entries
	closed  bool
}

// Open memory-maps path and parses its header and offset table.
func Open(path string) (*Reader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("archive: failed to stat %s: %w", path, err)
	}

	file, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("archive: failed to map %s: %w", path, err)
	}

	r := &Reader{file: file, size: info.Size(), lookup: intmap.New(256, .95)}
	if err := r.parse(); err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) parse() error {
	header := make([]byte, 8)
	if _, err := r.file.ReadAt(header, 0); err != nil {
		return fmt.Errorf("archive: failed to read header: %w", err)
	}

	var magic [4]byte
	copy(magic[:], header[:4])
	if !isKnownMagic(magic) {
		return ErrInvalidArchive
	}

	count := binary.LittleEndian.Uint32(header[4:8])
	offsets := make([]byte, int(count)*4)
	if _, err := r.file.ReadAt(offsets, 8); err != nil {
		return fmt.Errorf("archive: failed to read offset table: %w", err)
	}

	offsetOf := make([]uint32, count)
	for i := range offsetOf {
		offsetOf[i] = binary.LittleEndian.Uint32(offsets[i*4 : i*4+4])
	}

	r.entries = make([]entry, 0, count)
	for i, off := range offsetOf {
		if isPlaceholder(offsetOf, off, i) {
			continue
		}

		sizeWord := make([]byte, 4)
		if _, err := r.file.ReadAt(sizeWord, int64(off)); err != nil {
			return fmt.Errorf("archive: failed to read entry %d size: %w", i, err)
		}
		raw := binary.LittleEndian.Uint32(sizeWord)
		compressed := raw>>24 == compressedFlag
		decodedLen := raw & 0x00FFFFFF

		next := r.size
		for j := i + 1; j < len(offsetOf); j++ {
			if !isPlaceholder(offsetOf, offsetOf[j], j) {
				next = int64(offsetOf[j])
				break
			}
		}
		length := next - int64(off) - 4
		if length < 0 {
			return fmt.Errorf("%w: entry %d has negative length", ErrCorruptEntry, i)
		}

		pos := len(r.entries)
		r.entries = append(r.entries, entry{
			offset:     off + 4,
			length:     uint32(length),
			decodedLen: decodedLen,
			compressed: compressed,
		})
		r.lookup.Store(uint32(i), uint32(pos))
	}

	return nil
}

func isKnownMagic(magic [4]byte) bool {
	for _, m := range knownMagics {
		if m == magic {
			return true
		}
	}
	return false
}

// isPlaceholder reports whether offset marks a missing entry slot, as found
// in trial/shareware builds whose file table still reserves the index.
func isPlaceholder(offsets []uint32, offset uint32, i int) bool {
	if offset == 0 || offset == 0xFFFFFFFF {
		return true
	}
	if i < len(offsets)-1 && offset == offsets[i+1]-1 {
		return true
	}
	return false
}

// Count returns the number of slots in the offset table, including
// placeholders.
func (r *Reader) Count() int {
	return cap(r.entries)
}

// Extract returns an owned copy of entry i's decoded payload, or nil if the
// slot is a placeholder with no data.
func (r *Reader) Extract(i uint32) ([]byte, error) {
	if r.closed {
		return nil, ErrReaderClosed
	}

	pos, ok := r.lookup.Load(i)
	if !ok {
		if int(i) >= r.Count() {
			return nil, fmt.Errorf("%w: %d", ErrEntryOutOfRange, i)
		}
		return nil, nil // placeholder slot
	}

	e := r.entries[pos]
	raw := make([]byte, e.length)
	if _, err := r.file.ReadAt(raw, int64(e.offset)); err != nil {
		return nil, fmt.Errorf("archive: failed to read entry %d: %w", i, err)
	}

	if !e.compressed {
		return raw, nil
	}

	decoded, err := decompress(raw, int(e.decodedLen))
	if err != nil {
		return nil, fmt.Errorf("archive: entry %d: %w", i, err)
	}
	return decoded, nil
}

// Entries returns an iterator over indices that hold actual data.
func (r *Reader) Entries() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		if r.closed {
			return
		}
		for i := 0; i < r.Count(); i++ {
			if _, ok := r.lookup.Load(uint32(i)); ok {
				if !yield(uint32(i)) {
					return
				}
			}
		}
	}
}

// Close releases the memory mapping.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}
