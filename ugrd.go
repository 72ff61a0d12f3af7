// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package war2pud

import "github.com/kelindar/war2pud/internal/cursor"

// upgradeCount is the number of upgrade/spell slots the UGRD section
// describes.
const upgradeCount = 52

// Upgrade is the per-slot row of the UGRD section: research cost and the
// icon/group used to present it in-game.
type Upgrade struct {
	Time   uint8
	Gold   uint16
	Lumber uint16
	Oil    uint16
	Icon   uint16
	Group  uint16
	Flags  uint32
}

// defaultUpgrades returns the built-in UGRD row values used when a document
// omits the section or requests fresh defaults.
func defaultUpgrades() [upgradeCount]Upgrade {
	var rows [upgradeCount]Upgrade
	for i := range rows {
		rows[i] = Upgrade{
			Time:   60,
			Gold:   100,
			Lumber: 0,
			Oil:    0,
			Icon:   uint16(i),
			Group:  0,
		}
	}
	return rows
}

// parseUpgrades decodes a UGRD section payload, whose fields are likewise
// stored column-major: every slot's Time, then every slot's Gold, and so
// on.
func parseUpgrades(payload []byte) (defaultFlag uint16, rows [upgradeCount]Upgrade, err error) {
	c := cursor.New(payload)

	if defaultFlag, err = c.ReadU16(); err != nil {
		return
	}
	for i := range rows {
		if rows[i].Time, err = c.ReadU8(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].Gold, err = c.ReadU16(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].Lumber, err = c.ReadU16(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].Oil, err = c.ReadU16(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].Icon, err = c.ReadU16(); err != nil {
			return
		}
	}
	for i := range rows {
		if rows[i].Group, err = c.ReadU16(); err != nil {
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

// writeUpgrades encodes the inverse of parseUpgrades, byte-for-byte.
func writeUpgrades(w *sectionWriter, defaultFlag uint16, rows [upgradeCount]Upgrade) {
	w.u16(defaultFlag)
	for i := range rows {
		w.u8(rows[i].Time)
	}
	for i := range rows {
		w.u16(rows[i].Gold)
	}
	for i := range rows {
		w.u16(rows[i].Lumber)
	}
	for i := range rows {
		w.u16(rows[i].Oil)
	}
	for i := range rows {
		w.u16(rows[i].Icon)
	}
	for i := range rows {
		w.u16(rows[i].Group)
	}
	for i := range rows {
		w.u32(rows[i].Flags)
	}
}
