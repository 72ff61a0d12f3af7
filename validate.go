// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package war2pud

// Check validates the placement invariants a playable map must satisfy:
// every unit belongs to a legal player slot, every player with units has
// exactly one start location and vice versa. It returns the first violation
// found, scanning units in placement order and then player slots in index
// order. On success it also demotes any
// of the eight player slots that own no units to OwnerNobody and records
// the number of usable starting points.
func (m *Map) Check() error {
	if m.state != stateParsed && m.mode&ModeWrite == 0 {
		return ErrNotInitialized
	}

	var startLoc [16]bool
	var unitCount [16]int
	startingLocations := 0

	for _, u := range m.Units {
		owner := u.Owner
		if owner != PlayerNeutral && owner >= playerSlots {
			return ErrInvalidPlayer
		}

		if Unit(u.Type).IsStartLocation() {
			if startLoc[owner] {
				return ErrTooManyStartLocations
			}
			startLoc[owner] = true
			startingLocations++
			continue
		}

		unitCount[owner]++
	}

	if startingLocations <= 1 {
		return ErrNotEnoughStartLocations
	}

	for i := 0; i < 16; i++ {
		switch {
		case unitCount[i] > 0 && !startLoc[i] && uint8(i) != PlayerNeutral:
			return ErrNoStartLocation
		case startLoc[i] && unitCount[i] == 0:
			return ErrEmptyPlayer
		}
	}

	for i := 0; i < playerSlots; i++ {
		if unitCount[i] == 0 {
			m.Owner[i] = OwnerNobody
		}
	}

	m.StartingPoints = startingLocations
	return nil
}
