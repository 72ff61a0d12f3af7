// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package war2pud reads, constructs, validates, and writes the binary map
// files ("PUD") of a classic real-time-strategy game, together with a
// decoder for its companion graphics archive ("WAR") — see the archive.go
// wrapper and the internal/archive package for the latter.
package war2pud

import (
	"fmt"
	"math/rand/v2"
	"os"

	"codeberg.org/go-mmap/mmap"
)

// Mode is a bitmask of capabilities requested when opening a map handle.
type Mode int

const (
	// ModeRead grants read-only operations: Parse, tile/description getters.
	ModeRead Mode = 1 << iota
	// ModeWrite grants mutators: setters, Write.
	ModeWrite
	// ModeNoParse suppresses the automatic Parse a ModeRead Open otherwise
	// performs.
	ModeNoParse
)

// state tracks the handle's position in its lifecycle, mirroring the
// CLOSED/OPEN_R/OPEN_W/OPEN_RW/PARSED states of the format's reference
// implementation.
type state int

const (
	stateClosed state = iota
	stateOpen
	stateParsed
)

// Era is the tileset theme governing tile appearance and palette.
type Era uint16

const (
	EraForest Era = iota
	EraWinter
	EraWasteland
	EraSwamp
)

// Dimensions is one of the four legal map sizes.
type Dimensions uint8

const (
	Dimensions32 Dimensions = iota
	Dimensions64
	Dimensions96
	Dimensions128
)

func (d Dimensions) size() (w, h int) {
	switch d {
	case Dimensions32:
		return 32, 32
	case Dimensions64:
		return 64, 64
	case Dimensions96:
		return 96, 96
	case Dimensions128:
		return 128, 128
	default:
		return 32, 32
	}
}

// versionWar2, versionExpansion are the two recognised VER section values.
const (
	versionWar2       uint16 = 0x0000
	versionExpansion  uint16 = 0x0001
	lightGroundTileID uint16 = 0x0050
)

// UnitPlacement is one entry of a map's UNIT section: a unit of a given
// type, owned by a player slot, placed at (X,Y), with a type-dependent
// alter value (e.g. a resource amount for a gold mine).
type UnitPlacement struct {
	X, Y  uint16
	Type  uint8
	Owner uint8
	Alter uint16
}

// Map is a single open PUD document: either a read handle over an existing
// file (optionally parsed) or a write handle being populated from scratch.
type Map struct {
	path  string
	mode  Mode
	state state

	file *mmap.File
	data []byte

	Tag         uint32
	Version     uint16
	Description [32]byte
	Era         Era
	Dimensions  Dimensions
	MapW, MapH  int
	Tiles       int

	Owner [16]uint8
	Side  [16]uint8
	AI    [16]uint8

	StartingGold   [16]uint16
	StartingLumber [16]uint16
	StartingOil    [16]uint16

	Units []UnitPlacement

	UDTADefaultFlag uint16
	UnitData        [unitCharacteristicsCount]UnitCharacteristics
	Obsolete        [obsoleteWordCount]uint16
	MouseRightBtn   [mouseRightBtnCount]uint8

	UGRDDefaultFlag uint16
	Upgrades        [upgradeCount]Upgrade

	Allow Allow

	TilesMap, MovementMap, ActionMap, OilMap []uint16

	PresentSections uint32

	DefaultUDTA  bool
	DefaultUGRD  bool
	DefaultAllow bool
	HasERAX      bool

	StartingPoints int
}

// Owner slot indices: 0-7 are player slots, 8-14 are unusable, 15 is the
// shared neutral slot.
const (
	OwnerNobody    uint8 = 3
	PlayerNeutral  uint8 = 15
	playerSlots          = 8
	unusableSlots        = 7
)

var prng = rand.New(rand.NewPCG(0xC0FFEE, 0xBADF00D))

// Open opens path under mode. ModeRead requires the file to exist and maps
// it; unless ModeNoParse is also set, the document is parsed immediately.
// ModeWrite with a nonexistent path creates a fresh document populated with
// documented defaults (a random tag, the expansion version, forest era,
// 32x32 dimensions).
func Open(path string, mode Mode) (*Map, error) {
	if path == "" {
		return nil, ErrInvalidArgument
	}

	m := &Map{path: path, mode: mode}

	info, err := os.Stat(path)
	switch {
	case err == nil && mode&ModeRead != 0:
		file, ferr := mmap.Open(path)
		if ferr != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpenFailed, ferr)
		}
		buf := make([]byte, info.Size())
		if _, rerr := file.ReadAt(buf, 0); rerr != nil {
			file.Close()
			return nil, fmt.Errorf("%w: %v", ErrOpenFailed, rerr)
		}
		m.file = file
		m.data = buf
		m.state = stateOpen

		if mode&ModeNoParse == 0 {
			if err := m.Parse(); err != nil {
				file.Close()
				return nil, err
			}
		}
		return m, nil

	case os.IsNotExist(err) && mode&ModeWrite != 0:
		m.setDefaults()
		m.Tag = prng.Uint32()
		m.Version = versionExpansion
		m.Era = EraForest
		m.setDimensions(Dimensions32)
		m.state = stateOpen
		return m, nil

	case err != nil && !os.IsNotExist(err):
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)

	default:
		return nil, fmt.Errorf("%w: %s", ErrOpenFailed, path)
	}
}

// Close releases the memory mapping, if any. A write handle with no backing
// file is a no-op.
func (m *Map) Close() error {
	if m.file != nil {
		err := m.file.Close()
		m.file = nil
		m.state = stateClosed
		return err
	}
	m.state = stateClosed
	return nil
}

func (m *Map) requireMode(required Mode) error {
	if m.mode&required == 0 {
		return ErrModeMismatch
	}
	return nil
}

// setDefaults populates UnitData, Upgrades, and Allow with built-in defaults
// and marks the corresponding Default* flags, mirroring what the parser
// does for a source file missing those sections.
func (m *Map) setDefaults() {
	m.UnitData = defaultUnitCharacteristics()
	m.DefaultUDTA = true
	m.Upgrades = defaultUpgrades()
	m.DefaultUGRD = true
	m.Allow = defaultAllow()
	m.DefaultAllow = true
}

// setDimensions applies dims and (re)allocates the four map-sized layers,
// defaulting TilesMap to light ground as the reference writer does.
func (m *Map) setDimensions(dims Dimensions) {
	m.Dimensions = dims
	w, h := dims.size()
	m.MapW, m.MapH = w, h
	m.Tiles = w * h

	m.TilesMap = make([]uint16, m.Tiles)
	for i := range m.TilesMap {
		m.TilesMap[i] = lightGroundTileID
	}
	m.MovementMap = make([]uint16, m.Tiles)
	m.ActionMap = make([]uint16, m.Tiles)
	m.OilMap = make([]uint16, m.Tiles)
}

// EraSet sets the map's era; requires ModeWrite.
func (m *Map) EraSet(era Era) error {
	if err := m.requireMode(ModeWrite); err != nil {
		return err
	}
	m.Era = era
	return nil
}

// DimensionsSet sets the map's dimensions, reinitialising the tile layers;
// requires ModeWrite.
func (m *Map) DimensionsSet(dims Dimensions) error {
	if err := m.requireMode(ModeWrite); err != nil {
		return err
	}
	m.setDimensions(dims)
	return nil
}

// VersionSet sets the raw VER section value; requires ModeWrite.
func (m *Map) VersionSet(version uint16) error {
	if err := m.requireMode(ModeWrite); err != nil {
		return err
	}
	m.Version = version
	return nil
}

// DescriptionSet copies descr (truncated to 31 bytes, NUL-padded) into the
// document's DESC field; requires ModeWrite.
func (m *Map) DescriptionSet(descr string) error {
	if err := m.requireMode(ModeWrite); err != nil {
		return err
	}
	m.Description = [32]byte{}
	n := copy(m.Description[:31], descr)
	_ = n
	return nil
}

// DescriptionGet returns the NUL-terminated description as a Go string.
func (m *Map) DescriptionGet() (string, error) {
	if err := m.requireMode(ModeRead); err != nil {
		return "", err
	}
	n := 0
	for n < len(m.Description) && m.Description[n] != 0 {
		n++
	}
	return string(m.Description[:n]), nil
}

// TagSet sets the document's tag; requires ModeWrite.
func (m *Map) TagSet(tag uint32) error {
	if err := m.requireMode(ModeWrite); err != nil {
		return err
	}
	m.Tag = tag
	return nil
}

// TileSet writes v into the tiles map at (x,y); requires ModeWrite.
func (m *Map) TileSet(x, y int, v uint16) error {
	if err := m.requireMode(ModeWrite); err != nil {
		return err
	}
	if x < 0 || y < 0 || x >= m.MapW || y >= m.MapH {
		return fmt.Errorf("%w: (%d,%d) out of bounds", ErrInvalidArgument, x, y)
	}
	m.TilesMap[y*m.MapW+x] = v
	return nil
}

// TileGet reads the tile id at (x,y); requires ModeRead.
func (m *Map) TileGet(x, y int) (uint16, error) {
	if err := m.requireMode(ModeRead); err != nil {
		return 0, err
	}
	if x < 0 || y < 0 || x >= m.MapW || y >= m.MapH {
		return 0, fmt.Errorf("%w: (%d,%d) out of bounds", ErrInvalidArgument, x, y)
	}
	return m.TilesMap[y*m.MapW+x], nil
}

// UnitAdd places a unit of type unit, owned by owner, at (x,y) with the
// given alter value; requires ModeWrite.
func (m *Map) UnitAdd(x, y int, owner, unit uint8, alter uint16) error {
	if err := m.requireMode(ModeWrite); err != nil {
		return err
	}
	if x < 0 || y < 0 || x >= m.MapW || y >= m.MapH {
		return fmt.Errorf("%w: (%d,%d) out of bounds", ErrInvalidArgument, x, y)
	}
	m.Units = append(m.Units, UnitPlacement{
		X: uint16(x), Y: uint16(y), Type: unit, Owner: owner, Alter: alter,
	})
	return nil
}

// SectionHas reports whether section was present when the document was
// parsed. A document created fresh for writing reports no section present.
func (m *Map) SectionHas(section Section) bool {
	return m.PresentSections&(1<<uint(section)) != 0
}

func (m *Map) markPresent(section Section) {
	m.PresentSections |= 1 << uint(section)
}
