// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package cursor provides a bounds-checked little-endian reader over an
// in-memory or memory-mapped byte buffer, shared by the PUD and WAR codecs.
package cursor

import (
	"encoding/binary"
	"errors"
)

// ErrEndOfInput is returned whenever a read would advance past the end of
// the underlying buffer. The cursor's position is left unchanged on failure.
var ErrEndOfInput = errors.New("cursor: read past end of input")

// Cursor is a bounds-checked little-endian reader. It never allocates beyond
// what the caller supplies and never panics on malformed input.
type Cursor struct {
	buf []byte
	pos int
}

// New wraps buf for sequential bounds-checked reads starting at position 0.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Seek moves the cursor to an absolute position within the buffer.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.buf) {
		return ErrEndOfInput
	}
	c.pos = pos
	return nil
}

// Rewind moves the cursor back to the start of the buffer.
func (c *Cursor) Rewind() {
	c.pos = 0
}

// ReadU8 reads one byte and advances the cursor.
func (c *Cursor) ReadU8() (uint8, error) {
	if c.Remaining() < 1 {
		return 0, ErrEndOfInput
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

// ReadU16 reads a little-endian uint16 and advances the cursor.
func (c *Cursor) ReadU16() (uint16, error) {
	if c.Remaining() < 2 {
		return 0, ErrEndOfInput
	}
	v := binary.LittleEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

// ReadU32 reads a little-endian uint32 and advances the cursor.
func (c *Cursor) ReadU32() (uint32, error) {
	if c.Remaining() < 4 {
		return 0, ErrEndOfInput
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

// ReadBytes returns a slice view of the next n bytes and advances the
// cursor. The returned slice aliases the underlying buffer; callers that
// need to retain it beyond the current call must copy it.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, ErrEndOfInput
	}
	v := c.buf[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

// ReadInto copies exactly len(dst) bytes into dst and advances the cursor.
func (c *Cursor) ReadInto(dst []byte) error {
	if c.Remaining() < len(dst) {
		return ErrEndOfInput
	}
	copy(dst, c.buf[c.pos:c.pos+len(dst)])
	c.pos += len(dst)
	return nil
}

// PeekBytes returns a slice view of the next n bytes without advancing.
func (c *Cursor) PeekBytes(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, ErrEndOfInput
	}
	return c.buf[c.pos : c.pos+n], nil
}
