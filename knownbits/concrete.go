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

import (
	"fmt"

	"github.com/holiman/uint256"
)

// maxConcreteBits caps the number of unknown bits Concretize will expand;
// the result has 2^unknown elements.
const maxConcreteBits = 24

// Concretize returns the set of all concrete words consistent with kb,
// exactly 2^u of them for u unknown bits. Known bits are fixed by the
// masks and the unknown positions are filled by binary counting in
// increasing bit order, so the output order is deterministic. Callers may
// rely on the order for test reproducibility only.
func (kb KnownBits) Concretize() ([]Word, error) {
	if kb.HasConflict() {
		return nil, ErrConflict
	}
	unknown := make([]uint, 0, kb.width)
	for i := uint(0); i < kb.width; i++ {
		if kb.UnknownAt(i) {
			unknown = append(unknown, i)
		}
	}
	if uint(len(unknown)) > maxConcreteBits {
		return nil, fmt.Errorf("%w: %d unknown bits", ErrWidthTooLarge, len(unknown))
	}
	total := uint64(1) << uint(len(unknown))
	out := make([]Word, 0, total)
	for i := uint64(0); i < total; i++ {
		w := Word{width: kb.width, n: kb.one}
		rem := i
		for _, pos := range unknown {
			if rem&1 == 1 {
				setBit(&w.n, pos)
			}
			rem >>= 1
		}
		out = append(out, w)
	}
	return out, nil
}

// Abstract returns the tightest abstract value containing every word in the
// set: a bit is known-zero iff it is zero in all of them, known-one iff it
// is one in all of them, unknown otherwise. The empty set has no
// abstraction (ErrEmptySet) and all words must share one width
// (ErrWidthMismatch). Abstract is the left inverse of Concretize:
// Abstract(kb.Concretize()) == kb for every valid kb.
func Abstract(words []Word) (KnownBits, error) {
	if len(words) == 0 {
		return KnownBits{}, ErrEmptySet
	}
	width := words[0].width
	kb := KnownBits{width: width}
	kb.zero.Set(lowMask(width))
	kb.one.Set(lowMask(width))
	for i := range words {
		if words[i].width != width {
			return KnownBits{}, fmt.Errorf("%w: %d vs %d", ErrWidthMismatch, width, words[i].width)
		}
		var inv uint256.Int
		inv.Xor(&words[i].n, lowMask(width))
		kb.zero.And(&kb.zero, &inv)
		kb.one.And(&kb.one, &words[i].n)
	}
	return kb, nil
}
