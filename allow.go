// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package war2pud

import "github.com/kelindar/war2pud/internal/cursor"

// Allow is the ALOW section: six parallel per-player bitfields governing
// what a player is permitted to build, cast, or research. Each entry is a
// bitmask over unit, spell, or upgrade ids, one mask per of the 16 player
// slots.
type Allow struct {
	UnitAlow   [16]uint32
	SpellStart [16]uint32
	SpellAlow  [16]uint32
	SpellAcq   [16]uint32
	UpAlow     [16]uint32
	UpAcq      [16]uint32
}

// defaultAllow returns the built-in ALOW values used when a document omits
// the section: every unit, spell, and upgrade permitted, nothing
// pre-acquired.
func defaultAllow() Allow {
	var a Allow
	for i := 0; i < 16; i++ {
		a.UnitAlow[i] = 0xFFFFFFFF
		a.SpellAlow[i] = 0xFFFFFFFF
		a.UpAlow[i] = 0xFFFFFFFF
	}
	return a
}

// parseAllow decodes an ALOW section payload: six consecutive 16-entry
// uint32 arrays in field declaration order.
func parseAllow(payload []byte) (a Allow, err error) {
	c := cursor.New(payload)
	arrays := [][]uint32{a.UnitAlow[:], a.SpellStart[:], a.SpellAlow[:], a.SpellAcq[:], a.UpAlow[:], a.UpAcq[:]}
	for _, arr := range arrays {
		for i := range arr {
			if arr[i], err = c.ReadU32(); err != nil {
				return
			}
		}
	}
	return
}

// writeAllow encodes the inverse of parseAllow, byte-for-byte.
func writeAllow(w *sectionWriter, a Allow) {
	arrays := [][16]uint32{a.UnitAlow, a.SpellStart, a.SpellAlow, a.SpellAcq, a.UpAlow, a.UpAcq}
	for _, arr := range arrays {
		for i := range arr {
			w.u32(arr[i])
		}
	}
}
