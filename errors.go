// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package war2pud

import (
	"errors"
	"fmt"
)

// Sentinel errors returned across the public API. Use errors.Is to test for
// a specific kind; section-scoped failures additionally carry the tag via
// fmt.Errorf("%w", ...) wrapping so callers can match both the kind and, by
// inspecting the message, the offending section.
var (
	ErrInvalidArgument = errors.New("war2pud: invalid argument")
	ErrOpenFailed      = errors.New("war2pud: failed to open file")
	ErrModeMismatch    = errors.New("war2pud: operation not permitted in current mode")
	ErrEndOfInput      = errors.New("war2pud: read past end of input")
	ErrMissingSection  = errors.New("war2pud: required section not found")
	ErrCorruptSection  = errors.New("war2pud: section length inconsistent with payload")

	ErrNotInitialized          = errors.New("war2pud: document not parsed")
	ErrInvalidPlayer           = errors.New("war2pud: unit references an invalid player slot")
	ErrTooManyStartLocations   = errors.New("war2pud: more than one start location for a player")
	ErrNotEnoughStartLocations = errors.New("war2pud: fewer than two start locations in map")
	ErrNoStartLocation         = errors.New("war2pud: player owns units but has no start location")
	ErrEmptyPlayer             = errors.New("war2pud: player has a start location but no units")
)

// missingSection wraps ErrMissingSection with the offending tag.
func missingSection(tag Section) error {
	return fmt.Errorf("%w: %s", ErrMissingSection, tag)
}

// corruptSection wraps ErrCorruptSection with the offending tag and detail.
func corruptSection(tag Section, detail string) error {
	return fmt.Errorf("%w: %s: %s", ErrCorruptSection, tag, detail)
}
