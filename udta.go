// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package war2pud

import (
	"github.com/kelindar/war2pud/internal/cursor"
)

// unitCharacteristicsCount is the number of unit/building slots the UDTA
// section describes, one per value of the unit-id space used by UNIT.
const unitCharacteristicsCount = 110

// obsoleteWordCount is the length, in 16-bit words, of a block the format
// reserves inside UDTA that no known build of the game reads; it is carried
// through verbatim on round-trip.
const obsoleteWordCount = 508

// mouseRightBtnCount is intentionally smaller than unitCharacteristicsCount:
// the format only ever describes a right-click cursor for the first 58
// unit slots.
const mouseRightBtnCount = 58

// UnitCharacteristics is the per-unit-type row of the UDTA section: combat
// stats, costs, and rendering hints shared by every placed instance of that
// unit type.
type UnitCharacteristics struct {
	OverlapFrames uint16

	Sight uint32
	HP    uint16

	HasMagic   bool
	BuildTime  uint8
	GoldCost   uint8
	LumberCost uint8
	OilCost    uint8

	SizeW, SizeH uint16
	BoxW, BoxH   uint16

	Range              uint8
	ComputerReactRange uint8
	HumanReactRange    uint8
	Armor              uint8
	RectSel            bool
	Priority           uint8
	BasicDamage        uint8
	PiercingDamage     uint8
	WeaponsUpgradable  bool
	ArmorUpgradable    bool
	MissileWeapon      uint8
	Type               uint8
	DecayRate          uint8
	Annoy              uint8
	PointValue         uint16
	CanTarget          uint8
	Flags              uint32
}

// defaultUnitCharacteristics returns the built-in UDTA row values used when
// a document omits the section or requests fresh defaults. The reference
// game ships a generated table for this; lacking that generator's output,
// every row here is a plausible, internally consistent placeholder: a
// lightly-armed, quick-to-build unit with no upgrade flags set.
func defaultUnitCharacteristics() [unitCharacteristicsCount]UnitCharacteristics {
	var rows [unitCharacteristicsCount]UnitCharacteristics
	for i := range rows {
		rows[i] = UnitCharacteristics{
			OverlapFrames:  1,
			Sight:          4,
			HP:             30,
			BuildTime:      30,
			GoldCost:       50,
			LumberCost:     0,
			OilCost:        0,
			SizeW:          32,
			SizeH:          32,
			BoxW:           32,
			BoxH:           32,
			Range:          1,
			Armor:          0,
			Priority:       1,
			BasicDamage:    3,
			PiercingDamage: 1,
			MissileWeapon:  0xFF,
			DecayRate:      0,
			Annoy:          0,
			PointValue:     1,
			CanTarget:      0x01,
		}
	}
	return rows
}

// parseUnitData decodes a UDTA section payload into its default flag, the
// per-unit row table, the preserved obsolete block, and the shorter
// right-click cursor table. Fields are read in the fixed column-major order
// the format uses: every unit's OverlapFrames, then every unit's Sight, and
// so on, rather than one unit's full row at a time.
func parseUnitData(payload []byte) (defaultFlag uint16, rows [unitCharacteristicsCount]UnitCharacteristics, obsolete [obsoleteWordCount]uint16, mouseRightBtn [mouseRightBtnCount]uint8, err error) {
	c := cursor.New(payload)

	if defaultFlag, err = c.ReadU16(); err != nil {
		return
	}
	for i := range rows {
		if rows[i].OverlapFrames, err = c.ReadU16(); err != nil {
			return
		}
	}
	for i := range obsolete {
		if obsolete[i], err = c.ReadU16(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].Sight, err = c.ReadU32(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].HP, err = c.ReadU16(); err != nil {
			return
		}
	}
	for i := range rows {
		var b uint8
		if b, err = c.ReadU8(); err != nil {
			return
		}
		rows[i].HasMagic = b != 0
	}
	for i := range rows {
		if rows[i].BuildTime, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].GoldCost, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].LumberCost, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].OilCost, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		var packed uint32
		if packed, err = c.ReadU32(); err != nil {
			return
		}
		rows[i].SizeW = uint16(packed >> 16)
		rows[i].SizeH = uint16(packed)
	}
	for i := range rows {
		var packed uint32
		if packed, err = c.ReadU32(); err != nil {
			return
		}
		rows[i].BoxW = uint16(packed >> 16)
		rows[i].BoxH = uint16(packed)
	}
	for i := range rows {
		if rows[i].Range, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].ComputerReactRange, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].HumanReactRange, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].Armor, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		var b uint8
		if b, err = c.ReadU8(); err != nil {
			return
		}
		rows[i].RectSel = b != 0
	}
	for i := range rows {
		if rows[i].Priority, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].BasicDamage, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].PiercingDamage, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		var b uint8
		if b, err = c.ReadU8(); err != nil {
			return
		}
		rows[i].WeaponsUpgradable = b != 0
	}
	for i := range rows {
		var b uint8
		if b, err = c.ReadU8(); err != nil {
			return
		}
		rows[i].ArmorUpgradable = b != 0
	}
	for i := range rows {
		if rows[i].MissileWeapon, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].Type, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].DecayRate, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].Annoy, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range mouseRightBtn {
		if mouseRightBtn[i], err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].PointValue, err = c.ReadU16(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].CanTarget, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].Flags, err = c.ReadU32(); err != nil {
			return
		}
	}
	return
}

// writeUnitData encodes the inverse of parseUnitData, byte-for-byte.
func writeUnitData(w *sectionWriter, defaultFlag uint16, rows [unitCharacteristicsCount]UnitCharacteristics, obsolete [obsoleteWordCount]uint16, mouseRightBtn [mouseRightBtnCount]uint8) {
	w.u16(defaultFlag)
	for i := range rows {
		w.u16(rows[i].OverlapFrames)
	}
	for i := range obsolete {
		w.u16(obsolete[i])
	}
	for i := range rows {
		w.u32(rows[i].Sight)
	}
	for i := range rows {
		w.u16(rows[i].HP)
	}
	for i := range rows {
		w.boolean(rows[i].HasMagic)
	}
	for i := range rows {
		w.u8(rows[i].BuildTime)
	}
	for i := range rows {
		w.u8(rows[i].GoldCost)
	}
	for i := range rows {
		w.u8(rows[i].LumberCost)
	}
	for i := range rows {
		w.u8(rows[i].OilCost)
	}
	for i := range rows {
		w.u32(uint32(rows[i].SizeW)<<16 | uint32(rows[i].SizeH))
	}
	for i := range rows {
		w.u32(uint32(rows[i].BoxW)<<16 | uint32(rows[i].BoxH))
	}
	for i := range rows {
		w.u8(rows[i].Range)
	}
	for i := range rows {
		w.u8(rows[i].ComputerReactRange)
	}
	for i := range rows {
		w.u8(rows[i].HumanReactRange)
	}
	for i := range rows {
		w.u8(rows[i].Armor)
	}
	for i := range rows {
		w.boolean(rows[i].RectSel)
	}
	for i := range rows {
		w.u8(rows[i].Priority)
	}
	for i := range rows {
		w.u8(rows[i].BasicDamage)
	}
	for i := range rows {
		w.u8(rows[i].PiercingDamage)
	}
	for i := range rows {
		w.boolean(rows[i].WeaponsUpgradable)
	}
	for i := range rows {
		w.boolean(rows[i].ArmorUpgradable)
	}
	for i := range rows {
		w.u8(rows[i].MissileWeapon)
	}
	for i := range rows {
		w.u8(rows[i].Type)
	}
	for i := range rows {
		w.u8(rows[i].DecayRate)
	}
	for i := range rows {
		w.u8(rows[i].Annoy)
	}
	for i := range mouseRightBtn {
		w.u8(mouseRightBtn[i])
	}
	for i := range rows {
		w.u16(rows[i].PointValue)
	}
	for i := range rows {
		w.u8(rows[i].CanTarget)
	}
	for i := range rows {
		w.u32(rows[i].Flags)
	}
}
