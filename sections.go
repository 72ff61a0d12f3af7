// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package war2pud

// Section identifies one of the 20 fixed sections of a PUD body, in the
// canonical order the file format requires.
type Section int

const (
	SectionType Section = iota
	SectionVer
	SectionDesc
	SectionOwnr
	SectionEra
	SectionErax
	SectionDim
	SectionUdta
	SectionAlow
	SectionUgrd
	SectionSide
	SectionSgld
	SectionSlbr
	SectionSoil
	SectionAipl
	SectionMtxm
	SectionSqm
	SectionOilm
	SectionRegm
	SectionUnit

	sectionCount
)

// sectionTags holds the literal 4-byte ASCII tag for each section, including
// the trailing space some 3-letter tags carry to pad to 4 bytes.
var sectionTags = [sectionCount]string{
	SectionType: "TYPE",
	SectionVer:  "VER ",
	SectionDesc: "DESC",
	SectionOwnr: "OWNR",
	SectionEra:  "ERA ",
	SectionErax: "ERAX",
	SectionDim:  "DIM ",
	SectionUdta: "UDTA",
	SectionAlow: "ALOW",
	SectionUgrd: "UGRD",
	SectionSide: "SIDE",
	SectionSgld: "SGLD",
	SectionSlbr: "SLBR",
	SectionSoil: "SOIL",
	SectionAipl: "AIPL",
	SectionMtxm: "MTXM",
	SectionSqm:  "SQM ",
	SectionOilm: "OILM",
	SectionRegm: "REGM",
	SectionUnit: "UNIT",
}

// String returns the section's 4-byte tag, satisfying fmt.Stringer.
func (s Section) String() string {
	if s < 0 || s >= sectionCount {
		return ""
	}
	return sectionTags[s]
}

// SectionToString returns the 4-byte tag for section, or "" if section is
// out of range.
func SectionToString(section Section) string {
	return section.String()
}

// SectionValidIs reports whether tag matches one of the 20 known section
// tags.
func SectionValidIs(tag string) bool {
	for _, known := range sectionTags {
		if tag == known {
			return true
		}
	}
	return false
}

// fixed section payload lengths; 0 marks a variable-length section whose
// size is read from the section header instead.
var sectionFixedLength = [sectionCount]int{
	SectionType: 16,
	SectionVer:  2,
	SectionDesc: 32,
	SectionOwnr: 16,
	SectionEra:  2,
	SectionErax: 2,
	SectionDim:  4,
	SectionUdta: 5696,
	SectionAlow: 384,
	SectionUgrd: 782,
	SectionSide: 16,
	SectionSgld: 32,
	SectionSlbr: 32,
	SectionSoil: 32,
	SectionAipl: 16,
	SectionMtxm: 0,
	SectionSqm:  0,
	SectionOilm: 0,
	SectionRegm: 0,
	SectionUnit: 0,
}
