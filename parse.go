// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package war2pud

import (
	"encoding/binary"
	"errors"
)

// sectionFromTag reverse-looks-up a raw 4-byte tag into its Section, for
// identifying whatever section header the scanner lands on next.
func sectionFromTag(tag string) (Section, bool) {
	for i, known := range sectionTags {
		if known == tag {
			return Section(i), true
		}
	}
	return 0, false
}

// scanner walks a document's section stream by tag, mirroring the seek
// behaviour of the format's reference reader: requesting a section at or
// before the current position rewinds to the start of the buffer and scans
// forward again, since sections only ever appear once each in a fixed
// order.
type scanner struct {
	data   []byte
	pos    int
	last   int // index of the most recently matched section, -1 before any match
	length int
}

func newScanner(data []byte) *scanner {
	return &scanner{data: data, last: -1}
}

// goTo advances the scanner to the payload of target, returning
// ErrMissingSection if the stream reaches a later section first (meaning
// target was omitted) or runs out of data.
func (s *scanner) goTo(target Section) error {
	if int(target) <= s.last {
		s.pos = 0
		s.last = -1
	}

	for {
		if s.pos+8 > len(s.data) {
			return missingSection(target)
		}
		tag := string(s.data[s.pos : s.pos+4])
		length := binary.LittleEndian.Uint32(s.data[s.pos+4 : s.pos+8])

		found, ok := sectionFromTag(tag)
		if !ok {
			return corruptSection(target, "unrecognised section tag")
		}
		if found > target {
			return missingSection(target)
		}

		bodyStart := s.pos + 8
		if bodyStart+int(length) > len(s.data) {
			return corruptSection(found, "payload runs past end of file")
		}

		if found == target {
			s.pos = bodyStart
			s.last = int(found)
			s.length = int(length)
			return nil
		}

		s.pos = bodyStart + int(length)
		s.last = int(found)
	}
}

// payload returns the current section's body, sized to its declared length.
func (s *scanner) payload() []byte {
	return s.data[s.pos : s.pos+s.length]
}

// advance moves past the current section's payload.
func (s *scanner) advance() {
	s.pos += s.length
}

// Parse reads the document's sections from its mapped buffer into the
// typed fields of m. It requires ModeRead and a prior successful Open.
func (m *Map) Parse() error {
	if err := m.requireMode(ModeRead); err != nil {
		return err
	}
	if m.data == nil {
		return ErrNotInitialized
	}

	sc := newScanner(m.data)

	if err := sc.goTo(SectionType); err != nil {
		return err
	}
	body := sc.payload()
	if len(body) != sectionFixedLength[SectionType] {
		return corruptSection(SectionType, "wrong length")
	}
	m.Tag = binary.LittleEndian.Uint32(body[12:16])
	m.markPresent(SectionType)
	sc.advance()

	if err := sc.goTo(SectionVer); err != nil {
		return err
	}
	m.Version = binary.LittleEndian.Uint16(sc.payload())
	m.markPresent(SectionVer)
	sc.advance()

	if err := sc.goTo(SectionDesc); err != nil {
		return err
	}
	copy(m.Description[:], sc.payload())
	m.markPresent(SectionDesc)
	sc.advance()

	if err := sc.goTo(SectionOwnr); err != nil {
		return err
	}
	body = sc.payload()
	if len(body) != sectionFixedLength[SectionOwnr] {
		return corruptSection(SectionOwnr, "wrong length")
	}
	copy(m.Owner[:8], body[:8])
	m.Owner[15] = body[15]
	m.markPresent(SectionOwnr)
	sc.advance()

	if err := sc.goTo(SectionEra); err != nil {
		return err
	}
	m.Era = Era(binary.LittleEndian.Uint16(sc.payload()))
	m.markPresent(SectionEra)
	sc.advance()

	switch err := sc.goTo(SectionErax); {
	case err == nil:
		m.HasERAX = true
		m.markPresent(SectionErax)
		sc.advance()
	case errors.Is(err, ErrMissingSection):
		m.HasERAX = false
	default:
		return err
	}

	if err := sc.goTo(SectionDim); err != nil {
		return err
	}
	body = sc.payload()
	w := binary.LittleEndian.Uint16(body[0:2])
	h := binary.LittleEndian.Uint16(body[2:4])
	dims, err := dimensionsFromSize(int(w), int(h))
	if err != nil {
		return err
	}
	m.setDimensions(dims)
	m.markPresent(SectionDim)
	sc.advance()

	if err := sc.goTo(SectionUdta); err != nil {
		return err
	}
	m.UDTADefaultFlag, m.UnitData, m.Obsolete, m.MouseRightBtn, err = parseUnitData(sc.payload())
	if err != nil {
		return corruptSection(SectionUdta, err.Error())
	}
	m.markPresent(SectionUdta)
	sc.advance()

	switch err := sc.goTo(SectionAlow); {
	case err == nil:
		m.Allow, err = parseAllow(sc.payload())
		if err != nil {
			return corruptSection(SectionAlow, err.Error())
		}
		m.DefaultAllow = false
		m.markPresent(SectionAlow)
		sc.advance()
	case errors.Is(err, ErrMissingSection):
		m.Allow = defaultAllow()
		m.DefaultAllow = true
	default:
		return err
	}

	if err := sc.goTo(SectionUgrd); err != nil {
		return err
	}
	m.UGRDDefaultFlag, m.Upgrades, err = parseUpgrades(sc.payload())
	if err != nil {
		return corruptSection(SectionUgrd, err.Error())
	}
	m.markPresent(SectionUgrd)
	sc.advance()

	if err := sc.goTo(SectionSide); err != nil {
		return err
	}
	copy(m.Side[:], sc.payload())
	m.markPresent(SectionSide)
	sc.advance()

	if err := sc.parseU16Array(SectionSgld, m.StartingGold[:]); err != nil {
		return err
	}
	if err := sc.parseU16Array(SectionSlbr, m.StartingLumber[:]); err != nil {
		return err
	}
	if err := sc.parseU16Array(SectionSoil, m.StartingOil[:]); err != nil {
		return err
	}

	if err := sc.goTo(SectionAipl); err != nil {
		return err
	}
	copy(m.AI[:], sc.payload())
	m.markPresent(SectionAipl)
	sc.advance()

	if err := sc.goTo(SectionMtxm); err != nil {
		return err
	}
	if m.TilesMap, err = readU16Slice(sc.payload(), m.Tiles); err != nil {
		return corruptSection(SectionMtxm, err.Error())
	}
	m.markPresent(SectionMtxm)
	sc.advance()

	if err := sc.goTo(SectionSqm); err != nil {
		return err
	}
	if m.MovementMap, err = readU16Slice(sc.payload(), m.Tiles); err != nil {
		return corruptSection(SectionSqm, err.Error())
	}
	m.markPresent(SectionSqm)
	sc.advance()

	// OILM's declared length is the tile count in bytes, not doubled like
	// every other map layer, and its payload carries no real data; skip it
	// without trying to read it as a uint16 array.
	if err := sc.goTo(SectionOilm); err != nil {
		return err
	}
	m.OilMap = make([]uint16, m.Tiles)
	m.markPresent(SectionOilm)
	sc.advance()

	if err := sc.goTo(SectionRegm); err != nil {
		return err
	}
	if m.ActionMap, err = readU16Slice(sc.payload(), m.Tiles); err != nil {
		return corruptSection(SectionRegm, err.Error())
	}
	m.markPresent(SectionRegm)
	sc.advance()

	if err := sc.goTo(SectionUnit); err != nil {
		return err
	}
	body = sc.payload()
	if len(body)%8 != 0 {
		return corruptSection(SectionUnit, "length not a multiple of 8")
	}
	count := len(body) / 8
	m.Units = make([]UnitPlacement, count)
	for i := 0; i < count; i++ {
		row := body[i*8 : i*8+8]
		m.Units[i] = UnitPlacement{
			X:     binary.LittleEndian.Uint16(row[0:2]),
			Y:     binary.LittleEndian.Uint16(row[2:4]),
			Type:  row[4],
			Owner: row[5],
			Alter: binary.LittleEndian.Uint16(row[6:8]),
		}
	}
	m.markPresent(SectionUnit)
	sc.advance()

	m.state = stateParsed
	return nil
}

// parseU16Array reads section's payload as count little-endian uint16
// values into dst, verifying an exact length match.
func (s *scanner) parseU16Array(section Section, dst []uint16) error {
	if err := s.goTo(section); err != nil {
		return err
	}
	values, err := readU16Slice(s.payload(), len(dst))
	if err != nil {
		return corruptSection(section, err.Error())
	}
	copy(dst, values)
	s.advance()
	return nil
}

// readU16Slice decodes payload as exactly count little-endian uint16
// values.
func readU16Slice(payload []byte, count int) ([]uint16, error) {
	if len(payload) != count*2 {
		return nil, errors.New("unexpected payload length")
	}
	out := make([]uint16, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(payload[i*2 : i*2+2])
	}
	return out, nil
}

// dimensionsFromSize maps a raw width/height pair to one of the four legal
// Dimensions values.
func dimensionsFromSize(w, h int) (Dimensions, error) {
	switch {
	case w == 32 && h == 32:
		return Dimensions32, nil
	case w == 64 && h == 64:
		return Dimensions64, nil
	case w == 96 && h == 96:
		return Dimensions96, nil
	case w == 128 && h == 128:
		return Dimensions128, nil
	default:
		return 0, corruptSection(SectionDim, "unsupported map dimensions")
	}
}
