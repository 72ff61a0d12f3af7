// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package war2pud

import (
	"encoding/binary"
	"io"
)

// sectionWriter accumulates a single section's payload bytes before it is
// framed with its tag and length and flushed to the document writer.
type sectionWriter struct {
	buf []byte
}

func (w *sectionWriter) u8(v uint8)   { w.buf = append(w.buf, v) }
func (w *sectionWriter) boolean(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}
func (w *sectionWriter) u16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}
func (w *sectionWriter) u32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}
func (w *sectionWriter) raw(b []byte) { w.buf = append(w.buf, b...) }
func (w *sectionWriter) zeroes(n int) {
	w.buf = append(w.buf, make([]byte, n)...)
}

// flush frames w's accumulated payload with its section's tag and length and
// writes it to out.
func (w *sectionWriter) flush(out io.Writer, section Section) error {
	if _, err := out.Write([]byte(section.String())); err != nil {
		return err
	}
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(w.buf)))
	if _, err := out.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := out.Write(w.buf)
	return err
}

// writeSection frames fn's output with section's tag and length.
func writeSection(out io.Writer, section Section, fn func(w *sectionWriter)) error {
	w := &sectionWriter{}
	fn(w)
	return w.flush(out, section)
}

// Write serialises the document to out in the file format's fixed section
// order. ERAX is emitted only if HasERAX is set (the parsed source carried
// an ERAX section); ALOW is emitted only if DefaultAllow is clear (the
// parsed source carried an ALOW section instead of the built-in defaults
// being substituted). Both are decided by these flags alone, not by
// comparing the values against the defaults.
func (m *Map) Write(out io.Writer) error {
	if err := m.requireMode(ModeWrite); err != nil {
		return err
	}

	if err := writeSection(out, SectionType, func(w *sectionWriter) {
		w.raw([]byte("WAR2 MAP"))
		w.zeroes(2)
		w.u8(0x0A)
		w.u8(0xFF)
		w.u32(m.Tag)
	}); err != nil {
		return err
	}

	if err := writeSection(out, SectionVer, func(w *sectionWriter) {
		w.u16(m.Version)
	}); err != nil {
		return err
	}

	if err := writeSection(out, SectionDesc, func(w *sectionWriter) {
		w.raw(m.Description[:])
	}); err != nil {
		return err
	}

	if err := writeSection(out, SectionOwnr, func(w *sectionWriter) {
		w.raw(m.Owner[:8])
		w.zeroes(unusableSlots)
		w.u8(m.Owner[15])
	}); err != nil {
		return err
	}

	if err := writeSection(out, SectionEra, func(w *sectionWriter) {
		w.u16(uint16(m.Era))
	}); err != nil {
		return err
	}

	if m.HasERAX {
		if err := writeSection(out, SectionErax, func(w *sectionWriter) {
			w.u16(uint16(m.Era))
		}); err != nil {
			return err
		}
	}

	if err := writeSection(out, SectionDim, func(w *sectionWriter) {
		w.u16(uint16(m.MapW))
		w.u16(uint16(m.MapH))
	}); err != nil {
		return err
	}

	if err := writeSection(out, SectionUdta, func(w *sectionWriter) {
		writeUnitData(w, m.UDTADefaultFlag, m.UnitData, m.Obsolete, m.MouseRightBtn)
	}); err != nil {
		return err
	}

	if !m.DefaultAllow {
		if err := writeSection(out, SectionAlow, func(w *sectionWriter) {
			writeAllow(w, m.Allow)
		}); err != nil {
			return err
		}
	}

	if err := writeSection(out, SectionUgrd, func(w *sectionWriter) {
		writeUpgrades(w, m.UGRDDefaultFlag, m.Upgrades)
	}); err != nil {
		return err
	}

	if err := writeSection(out, SectionSide, func(w *sectionWriter) {
		w.raw(m.Side[:])
	}); err != nil {
		return err
	}

	if err := writeU16Section(out, SectionSgld, m.StartingGold[:]); err != nil {
		return err
	}
	if err := writeU16Section(out, SectionSlbr, m.StartingLumber[:]); err != nil {
		return err
	}
	if err := writeU16Section(out, SectionSoil, m.StartingOil[:]); err != nil {
		return err
	}

	if err := writeSection(out, SectionAipl, func(w *sectionWriter) {
		w.raw(m.AI[:])
	}); err != nil {
		return err
	}

	if err := writeU16Section(out, SectionMtxm, m.TilesMap); err != nil {
		return err
	}
	if err := writeU16Section(out, SectionSqm, m.MovementMap); err != nil {
		return err
	}

	// OILM carries no real data in the reference writer: its declared length
	// equals the tile count in bytes (not doubled, unlike every other map
	// layer) and its payload is unconditionally zero-filled.
	if err := writeSection(out, SectionOilm, func(w *sectionWriter) {
		w.zeroes(m.Tiles)
	}); err != nil {
		return err
	}

	if err := writeU16Section(out, SectionRegm, m.ActionMap); err != nil {
		return err
	}

	if err := writeSection(out, SectionUnit, func(w *sectionWriter) {
		for _, u := range m.Units {
			w.u16(u.X)
			w.u16(u.Y)
			w.u8(u.Type)
			w.u8(u.Owner)
			w.u16(u.Alter)
		}
	}); err != nil {
		return err
	}

	return nil
}

// writeU16Section frames a raw little-endian uint16 array as one section.
func writeU16Section(out io.Writer, section Section, values []uint16) error {
	return writeSection(out, section, func(w *sectionWriter) {
		for _, v := range values {
			w.u16(v)
		}
	})
}
