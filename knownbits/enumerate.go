// Copyright 2025 The kbcheck Authors
// This file is part of the kbcheck library.
//
// The kbcheck library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The kbcheck library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the kbcheck library. If not, see <http://www.gnu.org/licenses/>.

package knownbits

import "fmt"

// MaxEnumWidth caps Enumerate. The lattice has 3^width elements and is held
// in memory in full, which stops being practical somewhere around width 12.
const MaxEnumWidth = 12

// Enumerate returns every valid abstract value of the given width, exactly
// 3^width of them, in a fixed order. Each index is read as a base-3 number
// whose digit at position b picks the fate of bit b: 0 forces the bit to
// zero, 1 forces it to one, 2 leaves it unknown. Width 0 yields the single
// empty value.
func Enumerate(width uint) ([]KnownBits, error) {
	if width > MaxEnumWidth {
		return nil, fmt.Errorf("%w: %d > %d", ErrWidthTooLarge, width, MaxEnumWidth)
	}
	total := uint64(1)
	for i := uint(0); i < width; i++ {
		total *= 3
	}
	out := make([]KnownBits, 0, total)
	for idx := uint64(0); idx < total; idx++ {
		kb := Top(width)
		rem := idx
		for bit := uint(0); bit < width; bit++ {
			switch rem % 3 {
			case 0:
				setBit(&kb.zero, bit)
			case 1:
				setBit(&kb.one, bit)
			}
			rem /= 3
		}
		out = append(out, kb)
	}
	return out, nil
}
